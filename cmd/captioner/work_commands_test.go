package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"captioner/internal/testsupport"
	"captioner/internal/workdir"
)

func TestWorkListAndClean(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	stale := filepath.Join(env.cfg.Paths.WorkDir, workdir.DirName("old.mkv"))
	fresh := filepath.Join(env.cfg.Paths.WorkDir, workdir.DirName("new.mkv"))
	for _, dir := range []string{stale, fresh} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "audio.wav"), make([]byte, 2048), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	old := time.Now().Add(-100 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	out, _, err := runCLI(t, []string{"work", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("work list: %v", err)
	}
	requireContains(t, out, workdir.DirName("old.mkv"))
	requireContains(t, out, "Total: 2 directories, 4.0 KiB")

	out, _, err = runCLI(t, []string{"work", "clean"}, env.configPath)
	if err != nil {
		t.Fatalf("work clean: %v", err)
	}
	requireContains(t, out, "Removed 1 stale directories")
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale directory removed")
	}

	out, _, err = runCLI(t, []string{"work", "clean", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("work clean --all: %v", err)
	}
	requireContains(t, out, "Removed 1 work directories")

	out, _, err = runCLI(t, []string{"work", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("work list --json: %v", err)
	}
	if !strings.Contains(out, `"directories": []`) {
		t.Fatalf("expected empty directory list, got %s", out)
	}
}
