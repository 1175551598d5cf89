package whisperx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	langpkg "captioner/internal/language"
	"captioner/internal/logging"
	"captioner/internal/media/ffprobe"
	"captioner/internal/segmenter"
	"captioner/internal/services"
	"captioner/internal/transcript"
)

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Prober inspects a media file before audio extraction.
type Prober func(ctx context.Context, path string) (ffprobe.Result, error)

// ProbeWith returns a Prober that runs the given ffprobe binary.
func ProbeWith(binary string) Prober {
	return func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, binary, path)
	}
}

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	uvxBinary     string
	logger        *slog.Logger
	commandRunner CommandRunner
	probe         Prober
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary, uvxBinary string, logger *slog.Logger) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	if uvxBinary == "" {
		uvxBinary = UVXCommand
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		uvxBinary:    uvxBinary,
		logger:       logging.NewComponentLogger(logger, "whisperx"),
		probe:        ProbeWith(FFprobeCommand),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// WithProber replaces the ffprobe inspection step.
func (s *Service) WithProber(probe Prober) {
	if probe != nil {
		s.probe = probe
	}
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// ExtractAudio extracts the audio stream of source into dest, using the
// service's command runner if configured.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.ffmpegBinary, buildFFmpegArgs(source, dest)...)
	}
	return ExtractAudio(ctx, s.ffmpegBinary, source, dest)
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Result describes one transcription.
type Result struct {
	Words     []segmenter.WordTiming
	AudioPath string
	JSONPath  string
	// Language is the ISO 639-1 hint passed to WhisperX, empty when it
	// detected the language itself.
	Language string
	// MediaDuration is the container duration in seconds reported by ffprobe.
	MediaDuration float64
	// Duration is the wall time spent transcribing.
	Duration time.Duration
}

// Transcribe extracts audio from source into workDir, runs WhisperX on it and
// returns the decoded word timings. Timings may still need Repair: WhisperX
// omits them for words it could not align.
func (s *Service) Transcribe(ctx context.Context, source, workDir string) (Result, error) {
	var result Result
	source = strings.TrimSpace(source)
	if source == "" {
		return result, services.Wrap(services.ErrValidation, "transcribe", "prepare", "source path required", nil)
	}
	if workDir == "" {
		return result, services.Wrap(services.ErrConfiguration, "transcribe", "prepare", "work directory required", nil)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrConfiguration, "transcribe", "prepare", "ensure work directory", err)
	}

	started := time.Now()
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result.AudioPath = filepath.Join(workDir, stem+".wav")
	result.JSONPath = filepath.Join(workDir, stem+".json")
	result.Language = langpkg.ToISO2(s.cfg.Language)

	info, err := s.probe(ctx, source)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "probe", "ffprobe failed", err)
	}
	audio, ok := info.PrimaryAudio()
	if !ok {
		return result, services.Wrap(services.ErrValidation, "transcribe", "probe", "no audio stream in "+source, nil)
	}
	if duration := info.DurationSeconds(); duration > 0 {
		result.MediaDuration = duration
	}
	if result.Language == "" {
		result.Language = langpkg.ToISO2(audio.Language())
	}

	s.logger.Info("extracting audio",
		logging.String("source", source),
		logging.String("audio", result.AudioPath),
		logging.String("codec", audio.CodecName),
		logging.Int("channels", audio.Channels),
		logging.Float64("media_seconds", result.MediaDuration),
	)
	if err := s.ExtractAudio(ctx, source, result.AudioPath); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "extract audio", "ffmpeg failed", err)
	}

	s.logger.Info("running whisperx",
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
		logging.String("language", langpkg.DisplayName(result.Language)),
	)
	if err := s.run(ctx, s.uvxBinary, s.buildArgs(result.AudioPath, workDir, result.Language)...); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "transcription failed", err)
	}

	file, err := os.Open(result.JSONPath)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "load output", "whisperx produced no json", err)
	}
	defer file.Close()
	words, err := transcript.Decode(file, transcript.FormatWhisperX)
	if err != nil {
		return result, services.Wrap(services.ErrExternalTool, "transcribe", "load output", "decode whisperx json", err)
	}
	result.Words = words
	result.Duration = time.Since(started)

	s.logger.Info("transcription complete",
		logging.Int("words", len(words)),
		logging.Duration("elapsed", result.Duration),
		logging.String("json", result.JSONPath),
	)
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, language string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--patience", Patience,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if language != "" {
		args = append(args, "--language", language)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}
