// Package ffprobe runs ffprobe and decodes the stream and format metadata
// the transcribe command checks before extracting audio: whether an audio
// stream exists, its language tag and the container duration.
package ffprobe
