package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// uniqueSuffixLen is the number of hex characters appended by CleanFileName.
const uniqueSuffixLen = 6

// CleanFileName reduces the stem of name to ASCII letters, digits and single
// underscores, keeping any extension. When unique is set a short random hex
// suffix is appended to the stem. An empty stem becomes "untitled".
func CleanFileName(name string, unique bool) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range stem {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	cleaned := strings.Trim(b.String(), "_")
	if cleaned == "" {
		cleaned = "untitled"
	}
	if unique {
		cleaned += "_" + UniqueSuffix()
	}
	return cleaned + ext
}

// UniqueSuffix returns a short random hex string.
func UniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:uniqueSuffixLen]
}

// StemOf returns the file name of path without directory or extension.
func StemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
