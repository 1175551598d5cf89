package segmenter

import (
	"strings"
	"testing"
)

// evenWords builds words of the given texts spaced step seconds apart, each
// lasting dur seconds.
func evenWords(step, dur float64, texts ...string) []WordTiming {
	words := make([]WordTiming, 0, len(texts))
	for i, text := range texts {
		start := float64(i) * step
		words = append(words, WordTiming{Text: text, Start: start, End: start + dur})
	}
	return words
}

func cueTexts(cues []Cue) []string {
	out := make([]string, len(cues))
	for i, c := range cues {
		out[i] = c.Text
	}
	return out
}

func assertTexts(t *testing.T, cues []Cue, want ...string) {
	t.Helper()
	got := cueTexts(cues)
	if len(got) != len(want) {
		t.Fatalf("got %d cues %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cue %d = %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

func assertWellFormed(t *testing.T, cues []Cue) {
	t.Helper()
	for i, c := range cues {
		if c.End < c.Start {
			t.Fatalf("cue %d ends before it starts: %+v", i, c)
		}
		if strings.TrimSpace(c.Text) == "" || c.Text != strings.TrimSpace(c.Text) {
			t.Fatalf("cue %d has untrimmed or empty text: %q", i, c.Text)
		}
		if i > 0 && c.Start < cues[i-1].Start {
			t.Fatalf("cue %d out of order: %+v after %+v", i, c, cues[i-1])
		}
	}
}
