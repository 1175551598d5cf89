package history

import (
	"os"
	"time"
)

// Run is one completed generation.
type Run struct {
	ID            string    `json:"id"`
	Fingerprint   string    `json:"fingerprint"`
	SourcePath    string    `json:"source_path"`
	OutputBase    string    `json:"output_base"`
	WordCount     int       `json:"word_count"`
	StandardCues  int       `json:"standard_cues"`
	WordLevelCues int       `json:"word_level_cues"`
	CompactCues   int       `json:"compact_cues"`
	Artifacts     []string  `json:"artifacts,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ArtifactsExist reports whether every artifact the run wrote is still on disk.
func (r Run) ArtifactsExist() bool {
	if len(r.Artifacts) == 0 {
		return false
	}
	for _, path := range r.Artifacts {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}
