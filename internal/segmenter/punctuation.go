package segmenter

import (
	"strings"
	"unicode"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsPunctuation reports whether token consists solely of punctuation. The
// empty string counts as punctuation so that blank tokens are filtered along
// with stray commas and periods.
func IsPunctuation(token string) bool {
	for _, r := range token {
		if strings.ContainsRune(asciiPunctuation, r) || unicode.IsPunct(r) {
			continue
		}
		return false
	}
	return true
}

func endsSentence(token string) bool {
	return strings.HasSuffix(token, ".") || strings.HasSuffix(token, "?") || strings.HasSuffix(token, "!")
}
