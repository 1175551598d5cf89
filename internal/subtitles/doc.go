// Package subtitles renders cues and word timings into the files captioner
// produces: SRT subtitles for each layout, a plain transcript, and a
// structured timestamp dump.
//
// The renderers (FormatSRT, Transcript, Dump) are pure. Service.Write wraps
// them with the file handling a CLI run needs: output naming, an exclusive
// lock on the output directory, and atomic replacement of every artifact.
// ParseSRT and ValidateSRT read the files back for the validate and inspect
// commands.
package subtitles
