package history_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"captioner/internal/history"
	"captioner/internal/testsupport"
)

func TestRecordAndLookupByFingerprint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	artifact := filepath.Join(t.TempDir(), "talk.srt")
	if err := os.WriteFile(artifact, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	run := &history.Run{
		Fingerprint:  "fp-1",
		SourcePath:   "/in/talk.json",
		OutputBase:   "/out/talk",
		WordCount:    12,
		StandardCues: 3,
		CompactCues:  5,
		Artifacts:    []string{artifact},
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be assigned, got %+v", run)
	}

	found, err := store.LatestByFingerprint(ctx, "fp-1")
	if err != nil {
		t.Fatalf("LatestByFingerprint: %v", err)
	}
	if found == nil || found.ID != run.ID || found.CompactCues != 5 || found.WordCount != 12 {
		t.Fatalf("unexpected run %#v", found)
	}
	if !found.ArtifactsExist() {
		t.Fatal("expected artifacts to exist")
	}
	if err := os.Remove(artifact); err != nil {
		t.Fatalf("remove artifact: %v", err)
	}
	if found.ArtifactsExist() {
		t.Fatal("expected missing artifact to be detected")
	}

	missing, err := store.LatestByFingerprint(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil run for unknown fingerprint, got %v %v", missing, err)
	}
}

func TestRecordRequiresFingerprint(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.Record(context.Background(), &history.Run{}); err == nil {
		t.Fatal("expected error when fingerprint missing")
	}
}

func TestListAndPruneKeepNewest(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &history.Run{
			Fingerprint: "fp",
			OutputBase:  string(rune('a' + i)),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].OutputBase != "e" || runs[1].OutputBase != "d" {
		t.Fatalf("expected newest first, got %+v", runs)
	}

	latest, err := store.LatestByFingerprint(ctx, "fp")
	if err != nil || latest.OutputBase != "e" {
		t.Fatalf("expected newest run, got %+v %v", latest, err)
	}

	removed, err := store.Prune(ctx, 3)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[2].OutputBase != "c" {
		t.Fatalf("unexpected remaining runs %+v", all)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	path := store.Path()
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = db.Close()

	if err := history.BumpSchemaVersionForTest(path); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
