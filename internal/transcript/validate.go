package transcript

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"captioner/internal/segmenter"
)

var nan = math.NaN()

// ErrInvalidTiming marks word timings the segmenters cannot accept.
var ErrInvalidTiming = errors.New("invalid word timing")

// TimingError describes the first offending word in a sequence.
type TimingError struct {
	Index  int
	Word   segmenter.WordTiming
	Reason string
}

func (e *TimingError) Error() string {
	return fmt.Sprintf("word %d (%q %.3f-%.3f): %s", e.Index, e.Word.Text, e.Word.Start, e.Word.End, e.Reason)
}

func (e *TimingError) Unwrap() error { return ErrInvalidTiming }

// Validate checks the segmenter input contract: timings present and finite,
// 0 <= start <= end, and starts in non-decreasing order.
func Validate(words []segmenter.WordTiming) error {
	prevStart := 0.0
	for i, w := range words {
		switch {
		case math.IsNaN(w.Start) || math.IsNaN(w.End):
			return &TimingError{Index: i, Word: w, Reason: "missing timing"}
		case math.IsInf(w.Start, 0) || math.IsInf(w.End, 0):
			return &TimingError{Index: i, Word: w, Reason: "infinite timing"}
		case w.Start < 0:
			return &TimingError{Index: i, Word: w, Reason: "negative start"}
		case w.End < w.Start:
			return &TimingError{Index: i, Word: w, Reason: "ends before it starts"}
		case i > 0 && w.Start < prevStart:
			return &TimingError{Index: i, Word: w, Reason: "starts before the previous word"}
		}
		prevStart = w.Start
	}
	return nil
}

// RepairStats counts the fixes Repair applied.
type RepairStats struct {
	FilledTimings  int
	ClampedStarts  int
	ExtendedEnds   int
	Reordered      bool
	DroppedUntimed int
}

// Changed reports whether any fix was applied.
func (s RepairStats) Changed() bool {
	return s.FilledTimings > 0 || s.ClampedStarts > 0 || s.ExtendedEnds > 0 || s.Reordered || s.DroppedUntimed > 0
}

// Repair returns a copy of words that satisfies Validate. Missing starts take
// the previous word's end, missing ends take the word's own start. Words with
// no timing source at all are dropped. Negative starts clamp to zero, ends
// before starts are lifted to the start, and the result is stably sorted by
// start.
func Repair(words []segmenter.WordTiming) ([]segmenter.WordTiming, RepairStats) {
	var stats RepairStats
	out := make([]segmenter.WordTiming, 0, len(words))
	prevEnd := nan
	for _, w := range words {
		if bad(w.Start) {
			if bad(w.End) && bad(prevEnd) {
				stats.DroppedUntimed++
				continue
			}
			if !bad(prevEnd) {
				w.Start = prevEnd
			} else {
				w.Start = w.End
			}
			stats.FilledTimings++
		}
		if bad(w.End) {
			w.End = w.Start
			stats.FilledTimings++
		}
		if w.Start < 0 {
			w.Start = 0
			stats.ClampedStarts++
		}
		if w.End < w.Start {
			w.End = w.Start
			stats.ExtendedEnds++
		}
		prevEnd = w.End
		out = append(out, w)
	}
	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].Start < out[j].Start }) {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
		stats.Reordered = true
	}
	return out, stats
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
