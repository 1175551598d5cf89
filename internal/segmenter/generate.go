package segmenter

// Result holds every layout generated from one token sequence.
type Result struct {
	Standard  []Cue
	WordLevel []Cue
	Compact   []Cue
}

// Cues returns the cues for layout.
func (r Result) Cues(layout Layout) []Cue {
	switch layout {
	case LayoutStandard:
		return r.Standard
	case LayoutWordLevel:
		return r.WordLevel
	case LayoutCompact:
		return r.Compact
	default:
		return nil
	}
}

// Generate runs every segmenter over words. The layouts share nothing but the
// read-only input.
func Generate(words []WordTiming, opts Options) Result {
	return Result{
		Standard:  Standard(words, opts.Standard),
		WordLevel: WordLevel(words, opts.WordLevel),
		Compact:   Compact(words, opts.Compact),
	}
}

// Segment runs a single layout.
func Segment(words []WordTiming, layout Layout, opts Options) []Cue {
	switch layout {
	case LayoutStandard:
		return Standard(words, opts.Standard)
	case LayoutWordLevel:
		return WordLevel(words, opts.WordLevel)
	case LayoutCompact:
		return Compact(words, opts.Compact)
	default:
		return nil
	}
}
