package transcript

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"

	"captioner/internal/segmenter"
)

// Fingerprint hashes the words together with the segmenter options, so two
// runs share a fingerprint exactly when they would produce identical cues.
func Fingerprint(words []segmenter.WordTiming, opts segmenter.Options) (string, error) {
	h := blake3.New(32, nil)
	enc := json.NewEncoder(h)
	if err := enc.Encode(opts); err != nil {
		return "", fmt.Errorf("fingerprint options: %w", err)
	}
	if err := enc.Encode(words); err != nil {
		return "", fmt.Errorf("fingerprint words: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
