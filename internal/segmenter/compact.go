package segmenter

import (
	"strings"
	"unicode/utf8"
)

// logicalWord is a recognized word after hyphen continuations were folded in.
type logicalWord struct {
	text  string
	start float64
	end   float64
}

// mergeHyphenated folds tokens starting with "-" into the word at index i and
// returns the merged word along with the index of the last token consumed.
func mergeHyphenated(words []WordTiming, i int) (logicalWord, int) {
	lw := logicalWord{text: words[i].Text, start: words[i].Start, end: words[i].End}
	for i+1 < len(words) && strings.HasPrefix(words[i+1].Text, "-") {
		i++
		lw.text += strings.TrimLeft(words[i].Text, "-")
		lw.end = words[i].End
	}
	return lw, i
}

// Compact packs words into short cues for narrow, vertical displays.
//
// Tokens that ASR split at a hyphen ("co", "-worker") are rejoined without a
// space first. A cue is then closed only when it is non-empty and either the
// next word would push its character count above MaxCharactersPerCue or the
// silence before the word exceeds MinSilenceBetweenWords. A word longer than
// the limit on its own still gets a cue of its own. Lengths count runes, and
// the count always equals the rune length of the cue text.
func Compact(words []WordTiming, opts CompactOptions) []Cue {
	opts = opts.normalized()
	var cues []Cue
	var acc accumulator
	for i := 0; i < len(words); i++ {
		var lw logicalWord
		lw, i = mergeHyphenated(words, i)

		if !acc.empty() {
			added := utf8.RuneCountInString(lw.text) + 1
			if acc.chars+added > opts.MaxCharactersPerCue || lw.start-acc.end > opts.MinSilenceBetweenWords {
				cues = acc.flush(cues)
			}
		}
		acc.add(lw.text, lw.start, lw.end)
	}
	return acc.flush(cues)
}
