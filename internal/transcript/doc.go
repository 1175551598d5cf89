// Package transcript reads word timing files and checks them before they
// reach the segmenters.
//
// Supported inputs are the flat word list written by captioner itself (JSON or
// YAML, also the shape produced by NeMo word timestamps) and WhisperX JSON
// output, whose aligned words may lack timings. Text is NFC-normalized and
// trimmed on the way in. Validate rejects timings the segmenters cannot
// trust; Repair fixes them instead when the caller opts in.
package transcript
