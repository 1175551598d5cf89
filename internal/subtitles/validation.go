package subtitles

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Issue names reported by ValidateSRT.
const (
	IssueEmptyFile         = "empty_subtitle_file"
	IssueNoTimestamps      = "no_valid_timestamps"
	IssueNonSequential     = "non_sequential_index"
	IssueInvertedTiming    = "inverted_timing"
	IssueOverlappingCues   = "overlapping_cues"
	IssueEmptyCueText      = "empty_cue_text"
	issueReadErrorTemplate = "read_error: %v"
)

// ValidateSRT checks an SRT file for format issues.
// Returns a list of issues found; empty slice means validation passed.
func ValidateSRT(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf(issueReadErrorTemplate, err)}
	}
	if strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")) == "" {
		return []string{IssueEmptyFile}
	}

	cues, err := ParseSRT(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf(issueReadErrorTemplate, err)}
	}
	return ValidateCues(cues)
}

// ValidateCues reports ordering and content problems in parsed cues. Each
// issue carries the 1-based position of the first offending cue.
func ValidateCues(cues []ParsedCue) []string {
	if len(cues) == 0 {
		return []string{IssueNoTimestamps}
	}
	var issues []string
	seen := make(map[string]bool)
	report := func(name string, pos int) {
		if seen[name] {
			return
		}
		seen[name] = true
		issues = append(issues, fmt.Sprintf("%s: cue %d", name, pos))
	}
	for i, cue := range cues {
		pos := i + 1
		if cue.Index != pos {
			report(IssueNonSequential, pos)
		}
		if cue.End < cue.Start {
			report(IssueInvertedTiming, pos)
		}
		if i > 0 && cue.Start < cues[i-1].End {
			report(IssueOverlappingCues, pos)
		}
		if strings.TrimSpace(cue.Text) == "" {
			report(IssueEmptyCueText, pos)
		}
	}
	return issues
}
