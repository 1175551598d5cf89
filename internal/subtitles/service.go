package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"captioner/internal/config"
	"captioner/internal/fileutil"
	"captioner/internal/logging"
	"captioner/internal/segmenter"
	"captioner/internal/services"
)

const lockFileName = ".captioner.lock"

// lockRetryDelay is how often a busy output directory lock is retried.
const lockRetryDelay = 100 * time.Millisecond

// Service writes the artifacts of a run.
type Service struct {
	lockTimeout time.Duration
	logger      *slog.Logger
}

// NewService builds a Service from configuration.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	timeout := 30 * time.Second
	if cfg != nil && cfg.Output.LockTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Output.LockTimeoutSeconds) * time.Second
	}
	return &Service{
		lockTimeout: timeout,
		logger:      logging.NewComponentLogger(logger, "subtitles"),
	}
}

// Request describes one generation.
type Request struct {
	// BasePath is the output prefix; artifact suffixes are appended to it.
	BasePath   string
	Words      []segmenter.WordTiming
	Options    segmenter.Options
	Outputs    OutputSet
	DumpFormat DumpFormat
}

// Result reports what a generation wrote.
type Result struct {
	Paths      map[Artifact]string
	CueCounts  map[segmenter.Layout]int
	Cues       segmenter.Result
	Transcript string
}

// Written returns the written artifact paths in write order.
func (r Result) Written() []string {
	paths := make([]string, 0, len(r.Paths))
	for _, a := range Artifacts {
		if path, ok := r.Paths[a]; ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// Write segments the words and writes every requested artifact. Files are
// replaced atomically while an exclusive lock on the output directory is held.
func (s *Service) Write(ctx context.Context, req Request) (Result, error) {
	result := Result{
		Paths:     make(map[Artifact]string),
		CueCounts: make(map[segmenter.Layout]int),
	}
	base := strings.TrimSpace(req.BasePath)
	if base == "" {
		return result, services.Wrap(services.ErrValidation, "subtitles", "write", "output base path required", nil)
	}
	outputs := req.Outputs
	if len(outputs) == 0 {
		outputs = AllOutputs()
	}

	logger := logging.WithContext(ctx, s.logger)
	started := time.Now()

	result.Cues = segmenter.Generate(req.Words, req.Options)
	result.Transcript = Transcript(req.Words)
	for _, layout := range segmenter.Layouts {
		result.CueCounts[layout] = len(result.Cues.Cues(layout))
	}

	dir := filepath.Dir(base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, services.Wrap(services.ErrConfiguration, "subtitles", "write", "create output directory", err)
	}
	unlock, err := s.lock(ctx, dir)
	if err != nil {
		return result, err
	}
	defer unlock()

	for _, artifact := range Artifacts {
		if !outputs[artifact] {
			continue
		}
		data, err := s.render(artifact, req, result)
		if err != nil {
			return result, services.Wrap(services.ErrTransient, "subtitles", "render", string(artifact), err)
		}
		path := ArtifactPath(base, artifact, req.DumpFormat)
		if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
			return result, services.Wrap(services.ErrTransient, "subtitles", "write", path, err)
		}
		result.Paths[artifact] = path
		attrs := []logging.Attr{
			logging.String(logging.FieldArtifact, string(artifact)),
			logging.String("path", path),
			logging.Int("bytes", len(data)),
		}
		if layout, ok := artifact.Layout(); ok {
			attrs = append(attrs,
				logging.String(logging.FieldLayout, string(layout)),
				logging.Int("cues", result.CueCounts[layout]),
			)
		}
		logger.Debug("artifact written", logging.Args(attrs...)...)
	}

	if len(req.Words) == 0 {
		logging.WarnWithContext(logger, "no words to segment", "empty_input",
			logging.String(logging.FieldErrorHint, "check that the transcription produced word timings"),
			logging.String(logging.FieldImpact, "artifacts were written empty"),
		)
	}
	logger.Info("artifacts written",
		logging.String(logging.FieldEventType, "artifacts_written"),
		logging.String("base", base),
		logging.Int("words", len(req.Words)),
		logging.Int("artifacts", len(result.Paths)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *Service) render(artifact Artifact, req Request, result Result) ([]byte, error) {
	if layout, ok := artifact.Layout(); ok {
		return []byte(FormatSRT(result.Cues.Cues(layout))), nil
	}
	switch artifact {
	case ArtifactTranscript:
		return []byte(result.Transcript), nil
	case ArtifactTimestamps:
		return DumpBytes(req.Words, req.DumpFormat)
	default:
		return nil, fmt.Errorf("unknown artifact %q", artifact)
	}
}

// ErrOutputLocked is returned when another process holds the output lock past
// the configured timeout.
var ErrOutputLocked = errors.New("output directory is locked by another run")

func (s *Service) lock(ctx context.Context, dir string) (func(), error) {
	lock := flock.New(filepath.Join(dir, lockFileName))
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, services.Wrap(services.ErrTransient, "subtitles", "lock", dir, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTimeout, "subtitles", "lock", dir, ErrOutputLocked)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("release output lock failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.String(logging.FieldErrorHint, "remove "+lock.Path()+" if it lingers"),
				logging.String(logging.FieldImpact, "next run may wait for the lock"),
			)
		}
	}, nil
}
