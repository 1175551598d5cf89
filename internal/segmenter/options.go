package segmenter

const (
	DefaultMaxWordsPerCue         = 8
	DefaultMaxCueDuration         = 5.0
	DefaultMinPauseForSplit       = 0.5
	DefaultMinSilenceBetweenWords = 0.3
	DefaultMaxCharactersPerCue    = 17
)

// StandardOptions bounds cues produced by Standard.
type StandardOptions struct {
	MaxWordsPerCue   int
	MaxCueDuration   float64 // seconds
	MinPauseForSplit float64 // seconds
}

// DefaultStandardOptions returns the thresholds used for regular video.
func DefaultStandardOptions() StandardOptions {
	return StandardOptions{
		MaxWordsPerCue:   DefaultMaxWordsPerCue,
		MaxCueDuration:   DefaultMaxCueDuration,
		MinPauseForSplit: DefaultMinPauseForSplit,
	}
}

func (o StandardOptions) normalized() StandardOptions {
	if o.MaxWordsPerCue <= 0 {
		o.MaxWordsPerCue = DefaultMaxWordsPerCue
	}
	if o.MaxCueDuration <= 0 {
		o.MaxCueDuration = DefaultMaxCueDuration
	}
	// Zero is valid: split on any gap at all.
	if o.MinPauseForSplit < 0 {
		o.MinPauseForSplit = DefaultMinPauseForSplit
	}
	return o
}

// CompactOptions bounds cues produced by Compact.
type CompactOptions struct {
	MinSilenceBetweenWords float64 // seconds
	MaxCharactersPerCue    int
}

// DefaultCompactOptions returns the thresholds used for vertical video.
func DefaultCompactOptions() CompactOptions {
	return CompactOptions{
		MinSilenceBetweenWords: DefaultMinSilenceBetweenWords,
		MaxCharactersPerCue:    DefaultMaxCharactersPerCue,
	}
}

func (o CompactOptions) normalized() CompactOptions {
	if o.MaxCharactersPerCue <= 0 {
		o.MaxCharactersPerCue = DefaultMaxCharactersPerCue
	}
	if o.MinSilenceBetweenWords < 0 {
		o.MinSilenceBetweenWords = DefaultMinSilenceBetweenWords
	}
	return o
}

// WordLevelOptions controls WordLevel output.
type WordLevelOptions struct {
	// SkipPunctuation drops tokens made only of punctuation.
	SkipPunctuation bool
}

// DefaultWordLevelOptions skips punctuation-only tokens.
func DefaultWordLevelOptions() WordLevelOptions {
	return WordLevelOptions{SkipPunctuation: true}
}

// Options groups the thresholds for every layout.
type Options struct {
	Standard  StandardOptions
	WordLevel WordLevelOptions
	Compact   CompactOptions
}

// DefaultOptions returns defaults for every layout.
func DefaultOptions() Options {
	return Options{
		Standard:  DefaultStandardOptions(),
		WordLevel: DefaultWordLevelOptions(),
		Compact:   DefaultCompactOptions(),
	}
}
