package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"captioner/internal/segmenter"
)

// whisperXWord keeps timings optional: WhisperX leaves start/end off words it
// could not align (numbers, symbols). Flat word lists decode through it too.
type whisperXWord struct {
	Word  string           `json:"word"`
	Start *decimal.Decimal `json:"start"`
	End   *decimal.Decimal `json:"end"`
}

// yamlWord mirrors the YAML dump; absent timings stay nil.
type yamlWord struct {
	Word  string   `yaml:"word"`
	Start *float64 `yaml:"start"`
	End   *float64 `yaml:"end"`
}

type whisperXSegment struct {
	Text  string           `json:"text"`
	Start *decimal.Decimal `json:"start"`
	End   *decimal.Decimal `json:"end"`
	Words []whisperXWord   `json:"words"`
}

type whisperXPayload struct {
	Segments []whisperXSegment `json:"segments"`
	// Present when WhisperX writes a flattened list next to segments.
	WordSegments []whisperXWord `json:"word_segments"`
}

// Load reads a word timing file, detecting its format.
func Load(path string) ([]segmenter.WordTiming, error) {
	return LoadFormat(path, FormatAuto)
}

// LoadFormat reads a word timing file of the given format. FormatAuto
// detects it from the extension and content.
func LoadFormat(path string, format Format) ([]segmenter.WordTiming, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word timings: %w", err)
	}
	if format == FormatAuto {
		if format, err = detectFormat(path, data); err != nil {
			return nil, err
		}
	}
	return Decode(bytes.NewReader(data), format)
}

// Decode parses word timings of the given format from r. Missing timings are
// marked with NaN in every format so Repair can fill them; Validate rejects
// them.
func Decode(r io.Reader, format Format) ([]segmenter.WordTiming, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read word timings: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if format == FormatAuto {
		if format, err = detectFormat("", data); err != nil {
			return nil, err
		}
	}

	var words []segmenter.WordTiming
	switch format {
	case FormatWords:
		if len(bytes.TrimSpace(data)) == 0 {
			return []segmenter.WordTiming{}, nil
		}
		var records []whisperXWord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse word list json: %w", err)
		}
		words = appendWords(words, records)
	case FormatYAML:
		var records []yamlWord
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse word list yaml: %w", err)
		}
		for _, r := range records {
			words = append(words, segmenter.WordTiming{
				Text:  r.Word,
				Start: floatOrNaN(r.Start),
				End:   floatOrNaN(r.End),
			})
		}
	case FormatWhisperX:
		var payload whisperXPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parse whisperx json: %w", err)
		}
		words = flattenWhisperX(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return cleanWords(words), nil
}

func flattenWhisperX(payload whisperXPayload) []segmenter.WordTiming {
	var words []segmenter.WordTiming
	for _, segment := range payload.Segments {
		words = appendWords(words, segment.Words)
	}
	if len(words) > 0 {
		return words
	}
	return appendWords(words, payload.WordSegments)
}

func appendWords(dst []segmenter.WordTiming, records []whisperXWord) []segmenter.WordTiming {
	for _, w := range records {
		dst = append(dst, segmenter.WordTiming{
			Text:  w.Word,
			Start: decimalOrNaN(w.Start),
			End:   decimalOrNaN(w.End),
		})
	}
	return dst
}

func decimalOrNaN(d *decimal.Decimal) float64 {
	if d == nil {
		return nan
	}
	return d.InexactFloat64()
}

func floatOrNaN(f *float64) float64 {
	if f == nil {
		return nan
	}
	return *f
}

// cleanWords normalizes text to NFC, trims it, and drops empty records.
func cleanWords(words []segmenter.WordTiming) []segmenter.WordTiming {
	out := make([]segmenter.WordTiming, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(norm.NFC.String(w.Text))
		if w.Text == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
