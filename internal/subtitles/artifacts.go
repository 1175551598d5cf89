package subtitles

import (
	"path/filepath"
	"strings"

	"captioner/internal/segmenter"
	"captioner/internal/textutil"
)

// Artifact identifies one output file of a run.
type Artifact string

const (
	ArtifactStandard   Artifact = "standard"
	ArtifactWordLevel  Artifact = "word_level"
	ArtifactCompact    Artifact = "compact"
	ArtifactTranscript Artifact = "transcript"
	ArtifactTimestamps Artifact = "timestamps"
)

// Artifacts lists every artifact in write order.
var Artifacts = []Artifact{ArtifactStandard, ArtifactWordLevel, ArtifactCompact, ArtifactTranscript, ArtifactTimestamps}

// Suffix returns the file name suffix appended to the output base.
func (a Artifact) Suffix(dump DumpFormat) string {
	switch a {
	case ArtifactStandard:
		return ".srt"
	case ArtifactWordLevel:
		return "_word_level.srt"
	case ArtifactCompact:
		return "_shorts.srt"
	case ArtifactTranscript:
		return ".txt"
	case ArtifactTimestamps:
		if dump == DumpYAML {
			return "_word_timestamps.yaml"
		}
		return "_word_timestamps.json"
	default:
		return ""
	}
}

// Layout returns the cue layout an SRT artifact renders.
func (a Artifact) Layout() (segmenter.Layout, bool) {
	switch a {
	case ArtifactStandard:
		return segmenter.LayoutStandard, true
	case ArtifactWordLevel:
		return segmenter.LayoutWordLevel, true
	case ArtifactCompact:
		return segmenter.LayoutCompact, true
	default:
		return "", false
	}
}

// OutputSet selects which artifacts to write.
type OutputSet map[Artifact]bool

// AllOutputs enables every artifact.
func AllOutputs() OutputSet {
	set := make(OutputSet, len(Artifacts))
	for _, a := range Artifacts {
		set[a] = true
	}
	return set
}

// OutputBase derives the path prefix for a run's artifacts. Outputs land in
// outputDir, or next to source when outputDir is empty. Unique bases get a
// sanitized stem plus a random suffix so repeated runs never collide.
func OutputBase(source, outputDir string, unique bool) string {
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = filepath.Dir(source)
	}
	stem := textutil.StemOf(source)
	if unique {
		stem = textutil.CleanFileName(stem, true)
	}
	return filepath.Join(dir, stem)
}

// ArtifactPath joins base with the artifact's suffix.
func ArtifactPath(base string, a Artifact, dump DumpFormat) string {
	return base + a.Suffix(dump)
}

// Paths lists the files the enabled artifacts are written to, in write order.
func (s OutputSet) Paths(base string, dump DumpFormat) []string {
	var paths []string
	for _, a := range Artifacts {
		if s[a] {
			paths = append(paths, ArtifactPath(base, a, dump))
		}
	}
	return paths
}
