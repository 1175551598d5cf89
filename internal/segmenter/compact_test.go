package segmenter

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestCompactMergesHyphenContinuations(t *testing.T) {
	words := []WordTiming{
		{Text: "co", Start: 0.0, End: 0.2},
		{Text: "-worker", Start: 0.2, End: 0.6},
	}
	cues := Compact(words, DefaultCompactOptions())
	if len(cues) != 1 {
		t.Fatalf("expected one cue, got %v", cues)
	}
	if cues[0] != (Cue{Text: "coworker", Start: 0.0, End: 0.6}) {
		t.Fatalf("unexpected cue: %+v", cues[0])
	}
}

func TestCompactMergesHyphenChains(t *testing.T) {
	words := []WordTiming{
		{Text: "mother", Start: 0.0, End: 0.3},
		{Text: "-in", Start: 0.3, End: 0.4},
		{Text: "--law", Start: 0.4, End: 0.7},
		{Text: "ran", Start: 0.75, End: 1.1},
	}
	cues := Compact(words, DefaultCompactOptions())
	assertTexts(t, cues, "motherinlaw ran")
	if cues[0].End != 1.1 {
		t.Fatalf("unexpected end: %+v", cues[0])
	}
}

// The silence before a merged word is measured from its first fragment, so a
// late hyphen continuation never opens a new cue.
func TestCompactMergedWordGapUsesFirstFragment(t *testing.T) {
	words := []WordTiming{
		{Text: "a", Start: 0.0, End: 0.1},
		{Text: "co", Start: 0.15, End: 0.2},
		{Text: "-worker", Start: 0.8, End: 1.0},
	}
	cues := Compact(words, DefaultCompactOptions())
	if !reflect.DeepEqual(cues, []Cue{{Text: "a coworker", Start: 0.0, End: 1.0}}) {
		t.Fatalf("unexpected cues: %+v", cues)
	}

	words[1].Start = 0.5
	assertTexts(t, Compact(words, DefaultCompactOptions()), "a", "coworker")
}

func TestCompactCharacterLimit(t *testing.T) {
	// "this is a test" is 14 runes; adding " of" gives 17 and stays, " it" would be 20.
	words := evenWords(0.2, 0.15, "this", "is", "a", "test", "of", "it")
	cues := Compact(words, DefaultCompactOptions())
	assertTexts(t, cues, "this is a test of", "it")
	for _, c := range cues {
		if n := utf8.RuneCountInString(c.Text); n > DefaultMaxCharactersPerCue {
			t.Fatalf("cue %q has %d characters", c.Text, n)
		}
	}
}

// The running character count equals the rune length of the text, so a cue
// that lands exactly on the ceiling is kept whole.
func TestCompactExactCeilingBoundary(t *testing.T) {
	words := evenWords(0.2, 0.15, "abcdefgh", "ijklmnop")
	cues := Compact(words, DefaultCompactOptions())
	assertTexts(t, cues, "abcdefgh ijklmnop")

	words = evenWords(0.2, 0.15, "abcdefgh", "ijklmnopq")
	assertTexts(t, Compact(words, DefaultCompactOptions()), "abcdefgh", "ijklmnopq")
}

func TestCompactLongWordStandsAlone(t *testing.T) {
	words := evenWords(0.2, 0.15, "a", "incomprehensibilities", "b")
	cues := Compact(words, DefaultCompactOptions())
	assertTexts(t, cues, "a", "incomprehensibilities", "b")
}

func TestCompactSplitsOnSilence(t *testing.T) {
	words := []WordTiming{
		{Text: "wait", Start: 0.0, End: 0.3},
		{Text: "for", Start: 0.5, End: 0.6},
		{Text: "it", Start: 1.0, End: 1.2},
	}
	cues := Compact(words, DefaultCompactOptions())
	assertTexts(t, cues, "wait for", "it")
	if cues[0].Start != 0 || cues[0].End != 0.6 || cues[1].Start != 1.0 {
		t.Fatalf("unexpected timings: %+v", cues)
	}
}

func TestCompactCountsRunes(t *testing.T) {
	words := evenWords(0.2, 0.15, "café", "naïve", "résumé")
	// 4 + 1 + 5 + 1 + 6 = 17 runes, more bytes.
	assertTexts(t, Compact(words, DefaultCompactOptions()), "café naïve résumé")
}

func TestCompactKeepsPunctuationTokens(t *testing.T) {
	words := evenWords(0.2, 0.15, "yes", ",", "no")
	assertTexts(t, Compact(words, DefaultCompactOptions()), "yes , no")
}

func TestCompactEmptyAndDeterministic(t *testing.T) {
	if cues := Compact(nil, DefaultCompactOptions()); len(cues) != 0 {
		t.Fatalf("expected no cues, got %v", cues)
	}
	words := evenWords(0.25, 0.2, "short", "-form", "video", "captions", "are", "compact")
	first := Compact(words, DefaultCompactOptions())
	second := Compact(words, DefaultCompactOptions())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v and %v", first, second)
	}
	assertWellFormed(t, first)
}

func TestCompactDoesNotMutateInput(t *testing.T) {
	words := []WordTiming{{Text: "co", Start: 0, End: 0.2}, {Text: "-op", Start: 0.2, End: 0.4}}
	original := append([]WordTiming(nil), words...)
	Compact(words, DefaultCompactOptions())
	if !reflect.DeepEqual(words, original) {
		t.Fatalf("input mutated: %v", words)
	}
}
