package segmenter

import (
	"reflect"
	"strings"
	"testing"
)

func TestStandardEmptyInput(t *testing.T) {
	if cues := Standard(nil, DefaultStandardOptions()); len(cues) != 0 {
		t.Fatalf("expected no cues, got %v", cues)
	}
}

func TestStandardSplitsOnPause(t *testing.T) {
	words := []WordTiming{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "world", Start: 1.2, End: 1.6},
	}
	cues := Standard(words, StandardOptions{MaxWordsPerCue: 8, MaxCueDuration: 5, MinPauseForSplit: 0.5})
	assertTexts(t, cues, "Hello", "world")
	if cues[0].Start != 0.0 || cues[0].End != 0.4 {
		t.Fatalf("unexpected first cue timing: %+v", cues[0])
	}
	if cues[1].Start != 1.2 || cues[1].End != 1.6 {
		t.Fatalf("unexpected second cue timing: %+v", cues[1])
	}
}

func TestStandardKeepsShortGapsTogether(t *testing.T) {
	words := []WordTiming{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "world", Start: 0.9, End: 1.3},
	}
	cues := Standard(words, DefaultStandardOptions())
	assertTexts(t, cues, "Hello world")
	if cues[0].Start != 0 || cues[0].End != 1.3 {
		t.Fatalf("unexpected cue timing: %+v", cues[0])
	}
}

func TestStandardSplitsAfterSentenceEnd(t *testing.T) {
	words := evenWords(0.3, 0.25, "It", "works.", "Does", "it?", "Yes!", "Good")
	cues := Standard(words, DefaultStandardOptions())
	assertTexts(t, cues, "It works.", "Does it?", "Yes!", "Good")
	assertWellFormed(t, cues)
}

func TestStandardSentenceEndOnLastWordKeepsCue(t *testing.T) {
	words := evenWords(0.3, 0.25, "That", "is", "all.")
	assertTexts(t, Standard(words, DefaultStandardOptions()), "That is all.")
}

func TestStandardWordLimit(t *testing.T) {
	words := evenWords(0.2, 0.15, "one", "two", "three", "four", "five", "six", "seven")
	cues := Standard(words, StandardOptions{MaxWordsPerCue: 3, MaxCueDuration: 60, MinPauseForSplit: 1})
	assertTexts(t, cues, "one two three", "four five six", "seven")
	for _, c := range cues {
		if n := len(strings.Fields(c.Text)); n > 3 {
			t.Fatalf("cue %q has %d words", c.Text, n)
		}
	}
}

func TestStandardDurationLimit(t *testing.T) {
	words := []WordTiming{
		{Text: "a", Start: 0, End: 1},
		{Text: "b", Start: 1, End: 2},
		{Text: "c", Start: 2, End: 3},
		{Text: "d", Start: 3, End: 4.5},
	}
	cues := Standard(words, StandardOptions{MaxWordsPerCue: 8, MaxCueDuration: 4, MinPauseForSplit: 0.5})
	assertTexts(t, cues, "a b c", "d")
	if cues[0].End != 3 || cues[1].Start != 3 {
		t.Fatalf("unexpected timings: %+v", cues)
	}
}

func TestStandardLongWordIsNeverSplit(t *testing.T) {
	words := []WordTiming{
		{Text: "Supercalifragilistic", Start: 0, End: 9},
		{Text: "indeed", Start: 9.1, End: 9.5},
	}
	cues := Standard(words, DefaultStandardOptions())
	assertTexts(t, cues, "Supercalifragilistic", "indeed")
	if cues[0].Start != 0 || cues[0].End != 9 {
		t.Fatalf("long word timing changed: %+v", cues[0])
	}
}

func TestStandardKeepsPunctuationTokens(t *testing.T) {
	words := evenWords(0.2, 0.15, "Well", ",", "okay")
	assertTexts(t, Standard(words, DefaultStandardOptions()), "Well , okay")
}

func TestStandardConcatenationPreservesTokens(t *testing.T) {
	texts := strings.Fields("The quick brown fox jumps over the lazy dog. It was not amused, " +
		"so it got up and walked away slowly without a word. Then nothing happened at all for a while!")
	words := evenWords(0.35, 0.3, texts...)
	words[12].Start += 1.0 // introduce a pause
	words[12].End += 1.0
	for i := 13; i < len(words); i++ {
		words[i].Start += 1.0
		words[i].End += 1.0
	}
	cues := Standard(words, DefaultStandardOptions())
	assertWellFormed(t, cues)

	var joined strings.Builder
	for _, c := range cues {
		joined.WriteString(strings.ReplaceAll(c.Text, " ", ""))
	}
	if got, want := joined.String(), strings.Join(texts, ""); got != want {
		t.Fatalf("cue text lost tokens:\n got %q\nwant %q", got, want)
	}
	for _, c := range cues {
		if n := len(strings.Fields(c.Text)); n > DefaultMaxWordsPerCue {
			t.Fatalf("cue %q exceeds word limit", c.Text)
		}
	}
}

func TestStandardIsDeterministic(t *testing.T) {
	words := evenWords(0.4, 0.3, "repeat", "after", "me.", "again", "and", "again")
	first := Standard(words, DefaultStandardOptions())
	second := Standard(words, DefaultStandardOptions())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v and %v", first, second)
	}
}

func TestStandardZeroOptionsUseDefaults(t *testing.T) {
	words := evenWords(0.2, 0.15, "a", "b", "c", "d", "e", "f", "g", "h", "i")
	cues := Standard(words, StandardOptions{MinPauseForSplit: 0.5})
	assertTexts(t, cues, "a b c d e f g h", "i")
}
