package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"captioner/internal/segmenter"
)

// SampleWords is a short utterance with a sentence end, a long pause and a
// punctuation-only token.
func SampleWords() []segmenter.WordTiming {
	return []segmenter.WordTiming{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "there.", Start: 0.5, End: 0.9},
		{Text: "General", Start: 1.0, End: 1.4},
		{Text: "Kenobi", Start: 1.5, End: 2.0},
		{Text: "!", Start: 2.0, End: 2.0},
		{Text: "again", Start: 4.0, End: 4.5},
	}
}

// WriteWords writes words as a JSON word list under dir and returns its path.
func WriteWords(t testing.TB, dir, name string, words []segmenter.WordTiming) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		t.Fatalf("marshal words: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the file contents or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
