package subtitles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"captioner/internal/segmenter"
)

// DumpFormat selects the structured timestamp dump encoding.
type DumpFormat string

const (
	DumpJSON DumpFormat = "json"
	DumpYAML DumpFormat = "yaml"
)

// ParseDumpFormat resolves a dump format name.
func ParseDumpFormat(value string) (DumpFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return DumpJSON, nil
	case "yaml", "yml":
		return DumpYAML, nil
	default:
		return "", fmt.Errorf("unsupported dump format %q (use json or yaml)", value)
	}
}

// Transcript joins the raw text of every non-punctuation token with single
// spaces.
func Transcript(words []segmenter.WordTiming) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if segmenter.IsPunctuation(w.Text) {
			continue
		}
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// Dump writes every token, in order and unfiltered, as a list of
// {word, start, end} records.
func Dump(w io.Writer, words []segmenter.WordTiming, format DumpFormat) error {
	if words == nil {
		words = []segmenter.WordTiming{}
	}
	switch format {
	case DumpJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(words); err != nil {
			return fmt.Errorf("encode timestamps json: %w", err)
		}
		return nil
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(words); err != nil {
			return fmt.Errorf("encode timestamps yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode timestamps yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}
}

// DumpBytes renders Dump into memory.
func DumpBytes(words []segmenter.WordTiming, format DumpFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, words, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
