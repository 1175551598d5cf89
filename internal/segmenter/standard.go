package segmenter

// Standard groups words into conventional subtitles.
//
// A cue is closed before the next word when the open cue already holds a word
// and the previous word ended a sentence, the silence before the next word
// exceeds MinPauseForSplit, the cue holds MaxWordsPerCue words, or adding the
// word would stretch the cue past MaxCueDuration. Words are never split, so a
// single word longer than MaxCueDuration still forms its own cue. Every token
// is kept, punctuation included, to preserve timing.
func Standard(words []WordTiming, opts StandardOptions) []Cue {
	opts = opts.normalized()
	var cues []Cue
	var acc accumulator
	for _, word := range words {
		if !acc.empty() && standardBoundary(&acc, word, opts) {
			cues = acc.flush(cues)
		}
		acc.add(word.Text, word.Start, word.End)
	}
	return acc.flush(cues)
}

func standardBoundary(acc *accumulator, word WordTiming, opts StandardOptions) bool {
	switch {
	case endsSentence(acc.last):
		return true
	case word.Start-acc.end > opts.MinPauseForSplit:
		return true
	case acc.words >= opts.MaxWordsPerCue:
		return true
	case word.End-acc.start > opts.MaxCueDuration:
		return true
	}
	return false
}
