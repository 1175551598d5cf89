package transcript

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a word timing file layout.
type Format string

const (
	FormatAuto     Format = ""
	FormatWords    Format = "words"
	FormatWhisperX Format = "whisperx"
	FormatYAML     Format = "yaml"
)

// ErrUnknownFormat is returned when a file cannot be recognised.
var ErrUnknownFormat = errors.New("unknown word timing format")

// ParseFormat resolves a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return FormatAuto, nil
	case "words", "json":
		return FormatWords, nil
	case "whisperx":
		return FormatWhisperX, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// detectFormat picks a format from the file extension and the first
// significant byte of the payload.
func detectFormat(path string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return FormatWords, nil
	}
	switch trimmed[0] {
	case '[':
		return FormatWords, nil
	case '{':
		return FormatWhisperX, nil
	case '-':
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
