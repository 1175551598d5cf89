// Package notifications posts ntfy messages when a transcription finishes or
// fails. Transcribing a long recording can take a while, so the result is
// pushed to a phone or desktop instead of requiring the terminal to be
// watched. Without a configured topic every call is a no-op.
package notifications
