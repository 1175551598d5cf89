package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"captioner/internal/config"
	"captioner/internal/media/ffprobe"
	"captioner/internal/services"
	"captioner/internal/services/whisperx"
	"captioner/internal/testsupport"
	"captioner/internal/workdir"
)

const fakeWhisperXOutput = `{"language": "en", "segments": [{"text": "Hi there.", "words": [
  {"word": "Hi", "start": 0.2, "end": 0.4},
  {"word": "there.", "start": 0.5, "end": 0.9}
]}]}`

func stubWhisperX(t *testing.T) *[]string {
	t.Helper()
	var calls []string
	orig := newWhisperXService
	newWhisperXService = func(cfg *config.Config, cctx *commandContext, cmd *cobra.Command) (*whisperx.Service, error) {
		svc := whisperx.NewService(whisperx.Config{Model: cfg.WhisperX.Model}, "ffmpeg", "uvx", nil)
		svc.WithProber(func(ctx context.Context, path string) (ffprobe.Result, error) {
			calls = append(calls, "ffprobe")
			return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}, nil
		})
		svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
			calls = append(calls, name)
			if name != "uvx" {
				return nil
			}
			i := slices.Index(args, "--output_dir")
			if i < 0 || i+1 >= len(args) {
				t.Fatalf("missing --output_dir in %v", args)
			}
			return os.WriteFile(filepath.Join(args[i+1], "clip.json"), []byte(fakeWhisperXOutput), 0o644)
		})
		return svc, nil
	}
	t.Cleanup(func() { newWhisperXService = orig })
	return &calls
}

func TestTranscribeGeneratesSubtitles(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	calls := stubWhisperX(t)

	media := filepath.Join(env.inputDir, "clip.mkv")
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(media, []byte("not really video"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	out, _, err := runCLI(t, []string{"transcribe", "--keep-raw", media}, env.configPath)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(*calls) != 3 {
		t.Fatalf("expected ffprobe, ffmpeg and whisperx calls, got %v", *calls)
	}
	requireContains(t, out, "Generated subtitles for "+media+" (2 words)")
	requireContains(t, out, "Raw WhisperX output kept at")

	base := filepath.Join(env.cfg.Paths.OutputDir, "clip")
	want := "1\n00:00:00,200 --> 00:00:00,900\nHi there.\n\n"
	if got := testsupport.ReadFile(t, base+".srt"); got != want {
		t.Fatalf("unexpected srt:\n%s", got)
	}
	if _, err := os.Stat(base + "_whisperx.json"); err != nil {
		t.Fatalf("expected raw output kept: %v", err)
	}
}

func TestTranscribeNotifiesAndCleansWorkDir(t *testing.T) {
	var titles []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		titles = append(titles, r.Header.Get("Title"))
	}))
	defer server.Close()

	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	env.cfg.Notifications.NtfyTopic = server.URL
	writeTestConfig(t, env.configPath, env.cfg)
	stubWhisperX(t)

	stale := filepath.Join(env.cfg.Paths.WorkDir, workdir.DirName("old.mkv"))
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	old := time.Now().Add(-env.cfg.WorkRetention() - time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	media := filepath.Join(env.inputDir, "clip.mkv")
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}
	if _, _, err := runCLI(t, []string{"transcribe", media}, env.configPath); err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if len(titles) != 1 || titles[0] != "captioner - Subtitles Ready" {
		t.Fatalf("expected completion notification, got %v", titles)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale work directory removed")
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.WorkDir, workdir.DirName(media), "clip.json")); err != nil {
		t.Fatalf("expected current work directory kept: %v", err)
	}
}

func TestTranscribeMissingMedia(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	calls := stubWhisperX(t)

	_, _, err := runCLI(t, []string{"transcribe", filepath.Join(env.inputDir, "nope.mkv")}, env.configPath)
	if services.ExitCode(err) != services.ExitInvalidInput {
		t.Fatalf("expected invalid input exit code, got %d (%v)", services.ExitCode(err), err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no tool calls, got %v", *calls)
	}
}
