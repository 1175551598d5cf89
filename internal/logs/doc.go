// Package logs tails the captioner log file for `captioner logs`.
//
// It reads the last N lines with bounded memory, resumes from a byte offset,
// polls for new lines in follow mode, and can keep only the lines of one run
// by matching its run ID.
package logs
