package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"captioner/internal/segmenter"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// OutputDir receives generated files. Empty means alongside the input.
	OutputDir string `toml:"output_dir"`
	WorkDir   string `toml:"work_dir"`
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`

	// WorkRetentionHours is how long transcription work directories are
	// kept. Zero keeps them forever.
	WorkRetentionHours int `toml:"work_retention_hours"`
}

// Standard holds thresholds for regular subtitles.
type Standard struct {
	MaxWordsPerCue   int     `toml:"max_words_per_cue"`
	MaxCueDuration   float64 `toml:"max_cue_duration"`
	MinPauseForSplit float64 `toml:"min_pause_for_split"`
}

// Compact holds thresholds for vertical-video subtitles.
type Compact struct {
	MinSilenceBetweenWords float64 `toml:"min_silence_between_words"`
	MaxCharactersPerCue    int     `toml:"max_characters_per_cue"`
}

// WordLevel controls one-word-per-cue subtitles.
type WordLevel struct {
	SkipPunctuation bool `toml:"skip_punctuation"`
}

// Output selects which artifacts are written.
type Output struct {
	Standard           bool   `toml:"standard"`
	WordLevel          bool   `toml:"word_level"`
	Compact            bool   `toml:"compact"`
	Transcript         bool   `toml:"transcript"`
	Timestamps         bool   `toml:"timestamps"`
	TimestampsFormat   string `toml:"timestamps_format"`
	UniqueNames        bool   `toml:"unique_names"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// Input controls how word timing files are checked before segmentation.
type Input struct {
	// Repair fixes out-of-order or inverted timings instead of rejecting them.
	Repair bool `toml:"repair"`
}

// WhisperX contains transcription settings for the transcribe command.
type WhisperX struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
	Language    string `toml:"language"`
}

// History controls the run history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Keep    int    `toml:"keep"`
}

// Notifications configures ntfy push notifications for transcriptions.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for captioner.
//
// Configuration sections:
//   - Paths: output, work, state and log directories
//   - Standard, Compact, WordLevel: segmenter thresholds per layout
//   - Output: which artifacts are written and how
//   - Input: word timing validation policy
//   - WhisperX: transcription settings
//   - History: run history database
//   - Notifications: ntfy endpoint for transcription results
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Standard      Standard      `toml:"standard"`
	Compact       Compact       `toml:"compact"`
	WordLevel     WordLevel     `toml:"word_level"`
	Output        Output        `toml:"output"`
	Input         Input         `toml:"input"`
	WhisperX      WhisperX      `toml:"whisperx"`
	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/captioner/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("captioner.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the work, state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SegmenterOptions converts the configured thresholds for the segmenters.
func (c *Config) SegmenterOptions() segmenter.Options {
	return segmenter.Options{
		Standard: segmenter.StandardOptions{
			MaxWordsPerCue:   c.Standard.MaxWordsPerCue,
			MaxCueDuration:   c.Standard.MaxCueDuration,
			MinPauseForSplit: c.Standard.MinPauseForSplit,
		},
		WordLevel: segmenter.WordLevelOptions{
			SkipPunctuation: c.WordLevel.SkipPunctuation,
		},
		Compact: segmenter.CompactOptions{
			MinSilenceBetweenWords: c.Compact.MinSilenceBetweenWords,
			MaxCharactersPerCue:    c.Compact.MaxCharactersPerCue,
		},
	}
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	if strings.TrimSpace(c.History.Path) != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// WorkRetention returns how long transcription work directories are kept,
// or zero when they are never cleaned.
func (c *Config) WorkRetention() time.Duration {
	return time.Duration(c.Paths.WorkRetentionHours) * time.Hour
}

// LogPath returns the log file written alongside console output.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "captioner.log")
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable used to inspect media.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// UVXBinary returns the uvx executable used to launch WhisperX.
func (c *Config) UVXBinary() string {
	return "uvx"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
