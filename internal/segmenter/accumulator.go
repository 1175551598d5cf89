package segmenter

import (
	"strings"
	"unicode/utf8"
)

// accumulator holds the cue that is still open during a single pass.
type accumulator struct {
	text  strings.Builder
	start float64
	end   float64
	words int
	chars int
	last  string
}

func (a *accumulator) empty() bool {
	return a.words == 0
}

// add appends word joined by a single space and extends the window.
func (a *accumulator) add(word string, start, end float64) {
	if a.words == 0 {
		a.start = start
		a.chars = utf8.RuneCountInString(word)
	} else {
		a.text.WriteByte(' ')
		a.chars += 1 + utf8.RuneCountInString(word)
	}
	a.text.WriteString(word)
	a.end = end
	a.words++
	a.last = word
}

// flush appends the open cue to cues, if it has visible text, and resets.
func (a *accumulator) flush(cues []Cue) []Cue {
	if a.words > 0 {
		if text := strings.TrimSpace(a.text.String()); text != "" {
			cues = append(cues, Cue{Text: text, Start: a.start, End: a.end})
		}
	}
	a.reset()
	return cues
}

func (a *accumulator) reset() {
	a.text.Reset()
	a.start, a.end = 0, 0
	a.words, a.chars = 0, 0
	a.last = ""
}
