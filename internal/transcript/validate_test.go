package transcript

import (
	"errors"
	"math"
	"testing"

	"captioner/internal/segmenter"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		words  []segmenter.WordTiming
		index  int
		reason string
	}{
		{"negative", []segmenter.WordTiming{{Text: "a", Start: -0.1, End: 0.2}}, 0, "negative start"},
		{"inverted", []segmenter.WordTiming{{Text: "a", Start: 0, End: 1}, {Text: "b", Start: 2, End: 1.5}}, 1, "ends before it starts"},
		{"order", []segmenter.WordTiming{{Text: "a", Start: 1, End: 2}, {Text: "b", Start: 0.5, End: 2.5}}, 1, "starts before the previous word"},
		{"infinite", []segmenter.WordTiming{{Text: "a", Start: 0, End: math.Inf(1)}}, 0, "infinite timing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.words)
			var timingErr *TimingError
			if !errors.As(err, &timingErr) {
				t.Fatalf("expected TimingError, got %v", err)
			}
			if timingErr.Index != tt.index || timingErr.Reason != tt.reason {
				t.Fatalf("unexpected error %+v", timingErr)
			}
		})
	}

	ok := []segmenter.WordTiming{{Text: "a", Start: 0, End: 0}, {Text: "b", Start: 0, End: 1}, {Text: "c", Start: 1.5, End: 1.5}}
	if err := Validate(ok); err != nil {
		t.Fatalf("expected valid words, got %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("expected empty input to be valid, got %v", err)
	}
}

func TestRepairFixesEveryIssue(t *testing.T) {
	words := []segmenter.WordTiming{
		{Text: "late", Start: 2, End: 2.5},
		{Text: "neg", Start: -1, End: 0.5},
		{Text: "flip", Start: 3, End: 2.9},
		{Text: "ghost", Start: math.NaN(), End: math.NaN()},
	}
	repaired, stats := Repair(words)
	if err := Validate(repaired); err != nil {
		t.Fatalf("repair left invalid words: %v", err)
	}
	if !stats.Changed() || !stats.Reordered || stats.ClampedStarts != 1 || stats.ExtendedEnds != 1 || stats.FilledTimings != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if repaired[0].Text != "neg" || repaired[0].Start != 0 {
		t.Fatalf("expected clamped word first, got %+v", repaired)
	}
	if words[1].Start != -1 {
		t.Fatal("Repair must not modify its input")
	}
}

func TestRepairDropsWordsWithoutAnyTiming(t *testing.T) {
	words := []segmenter.WordTiming{
		{Text: "orphan", Start: math.NaN(), End: math.NaN()},
		{Text: "ok", Start: 1, End: 2},
	}
	repaired, stats := Repair(words)
	if len(repaired) != 1 || stats.DroppedUntimed != 1 {
		t.Fatalf("expected orphan to be dropped, got %v %+v", repaired, stats)
	}
}

func TestRepairLeavesValidInputAlone(t *testing.T) {
	words := []segmenter.WordTiming{{Text: "a", Start: 0, End: 1}, {Text: "b", Start: 1, End: 2}}
	repaired, stats := Repair(words)
	if stats.Changed() {
		t.Fatalf("expected no changes, got %+v", stats)
	}
	if len(repaired) != 2 || repaired[1] != words[1] {
		t.Fatalf("unexpected output %v", repaired)
	}
}
