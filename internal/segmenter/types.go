package segmenter

// WordTiming is one recognized word with its time span in seconds.
type WordTiming struct {
	Text  string  `json:"word" yaml:"word"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns the span of the word in seconds.
func (w WordTiming) Duration() float64 {
	return w.End - w.Start
}

// Cue is a single subtitle display unit.
type Cue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns how long the cue stays on screen in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Layout names one of the cue layouts.
type Layout string

const (
	LayoutStandard  Layout = "standard"
	LayoutWordLevel Layout = "word"
	LayoutCompact   Layout = "compact"
)

// Layouts lists every layout in output order.
var Layouts = []Layout{LayoutStandard, LayoutWordLevel, LayoutCompact}

// ParseLayout resolves a layout name, accepting a few common aliases.
func ParseLayout(value string) (Layout, bool) {
	switch value {
	case "standard", "default", "sentence":
		return LayoutStandard, true
	case "word", "word_level", "word-level":
		return LayoutWordLevel, true
	case "compact", "shorts", "vertical":
		return LayoutCompact, true
	default:
		return "", false
	}
}
