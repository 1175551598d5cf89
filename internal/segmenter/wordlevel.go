package segmenter

import "strings"

// WordLevel emits one cue per word with the word's own timing and verbatim
// text. Punctuation-only tokens are dropped when opts.SkipPunctuation is set;
// blank tokens are always dropped since a cue needs visible text.
func WordLevel(words []WordTiming, opts WordLevelOptions) []Cue {
	cues := make([]Cue, 0, len(words))
	for _, word := range words {
		if opts.SkipPunctuation && IsPunctuation(word.Text) {
			continue
		}
		if strings.TrimSpace(word.Text) == "" {
			continue
		}
		cues = append(cues, Cue{Text: word.Text, Start: word.Start, End: word.End})
	}
	return cues
}
