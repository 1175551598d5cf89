// Package whisperx runs the external WhisperX speech recognizer to obtain
// word-level timings for a media file.
//
// ffmpeg first extracts a mono 16 kHz WAV, then `uvx whisperx` aligns words
// and writes JSON, which is decoded through the transcript package. Both
// commands go through an injectable runner so tests never spawn processes.
package whisperx
