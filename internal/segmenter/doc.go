// Package segmenter converts word-level speech recognition timings into
// subtitle cues.
//
// Three independent layouts are produced from the same token sequence:
// Standard (sentence, pause, word-count and duration bounded), WordLevel (one
// cue per spoken word) and Compact (hyphen-merged words packed under a
// character ceiling for vertical video). Every function here is pure: the
// input slice is never modified and no state survives a call, so callers may
// run layouts concurrently over the same slice as long as they do not mutate
// it.
package segmenter
