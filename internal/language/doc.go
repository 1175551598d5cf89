// Package language normalizes the transcription language setting (ISO 639
// codes, BCP 47 tags, or English words) for WhisperX and for display.
package language
