// Package logging assembles structured slog loggers and attribute helpers used
// across captioner.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so every line written during one
// generation run carries the same run_id. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging
