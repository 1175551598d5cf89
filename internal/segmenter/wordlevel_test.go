package segmenter

import "testing"

func TestWordLevelSkipsPunctuation(t *testing.T) {
	words := []WordTiming{
		{Text: ".", Start: 1.0, End: 1.1},
		{Text: "Hi", Start: 1.2, End: 1.5},
	}
	cues := WordLevel(words, DefaultWordLevelOptions())
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %v", cues)
	}
	if cues[0] != (Cue{Text: "Hi", Start: 1.2, End: 1.5}) {
		t.Fatalf("unexpected cue: %+v", cues[0])
	}
}

func TestWordLevelKeepsPunctuationWhenAsked(t *testing.T) {
	words := []WordTiming{
		{Text: "Hi", Start: 1.2, End: 1.5},
		{Text: "!", Start: 1.5, End: 1.5},
		{Text: "", Start: 1.6, End: 1.7},
	}
	cues := WordLevel(words, WordLevelOptions{SkipPunctuation: false})
	assertTexts(t, cues, "Hi", "!")
}

func TestWordLevelVerbatimText(t *testing.T) {
	words := []WordTiming{{Text: "HELLO,", Start: 0, End: 0.5}, {Text: "world's", Start: 0.6, End: 1}}
	assertTexts(t, WordLevel(words, DefaultWordLevelOptions()), "HELLO,", "world's")
}

func TestWordLevelEmpty(t *testing.T) {
	if cues := WordLevel(nil, DefaultWordLevelOptions()); len(cues) != 0 {
		t.Fatalf("expected no cues, got %v", cues)
	}
}
