package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"captioner/internal/segmenter"
)

// FormatSRT renders cues as SRT text. Indices start at 1 and every cue is
// followed by a blank line. No cues yield the empty string.
func FormatSRT(cues []segmenter.Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		writeCue(&b, i+1, cue)
	}
	return b.String()
}

// WriteSRT streams cues to w in SRT form.
func WriteSRT(w io.Writer, cues []segmenter.Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		writeCue(bw, i+1, cue)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

func writeCue(w io.StringWriter, index int, cue segmenter.Cue) {
	_, _ = w.WriteString(strconv.Itoa(index))
	_, _ = w.WriteString("\n")
	_, _ = w.WriteString(segmenter.FormatTimestamp(cue.Start))
	_, _ = w.WriteString(" --> ")
	_, _ = w.WriteString(segmenter.FormatTimestamp(cue.End))
	_, _ = w.WriteString("\n")
	_, _ = w.WriteString(cue.Text)
	_, _ = w.WriteString("\n\n")
}

// ParsedCue is a cue read back from an SRT file.
type ParsedCue struct {
	Index int
	segmenter.Cue
}

// ParseSRT reads SRT blocks from r. Blocks without a parsable timing line are
// skipped; a missing or malformed index is reported as 0. Multi-line cue text
// is joined with newlines.
func ParseSRT(r io.Reader) ([]ParsedCue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var cues []ParsedCue
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		timing := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			continue
		}
		start, end, err := parseTimingLine(lines[timing])
		if err != nil {
			continue
		}
		cue := ParsedCue{Cue: segmenter.Cue{Start: start, End: end}}
		if timing > 0 {
			cue.Index, _ = strconv.Atoi(strings.TrimSpace(lines[timing-1]))
		}
		cue.Text = strings.TrimSpace(strings.Join(lines[timing+1:], "\n"))
		cues = append(cues, cue)
	}
	return cues, nil
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// Positional settings may follow the end timestamp.
	endField := strings.Fields(parts[1])
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err := parseSRTTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
