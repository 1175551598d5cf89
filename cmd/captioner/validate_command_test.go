package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"captioner/internal/services"
)

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.srt")
	bad := filepath.Join(dir, "bad.srt")
	if err := os.WriteFile(good, []byte(sampleStandardSRT), 0o644); err != nil {
		t.Fatalf("write good: %v", err)
	}
	inverted := "1\n00:00:02,000 --> 00:00:01,000\nbackwards\n\n"
	if err := os.WriteFile(bad, []byte(inverted), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}

	out, _, err := runCLI(t, []string{"validate", good}, "")
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	requireContains(t, out, good+": OK")

	out, _, err = runCLI(t, []string{"validate", good, bad}, "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, out, bad+": inverted_timing")
	requireContains(t, err.Error(), "1 of 2 files")
}
