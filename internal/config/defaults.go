package config

import "captioner/internal/segmenter"

const (
	defaultWorkDir          = "~/.local/share/captioner/work"
	defaultStateDir         = "~/.local/share/captioner"
	defaultLogDir           = "~/.local/share/captioner/logs"
	defaultWorkRetention    = 72
	defaultTimestampsFormat = "json"
	defaultLockTimeout      = 30
	defaultWhisperXModel    = "large-v3"
	defaultVADMethod        = "silero"
	defaultHistoryKeep      = 500
	defaultNtfyTimeout      = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,

			WorkRetentionHours: defaultWorkRetention,
		},
		Standard: Standard{
			MaxWordsPerCue:   segmenter.DefaultMaxWordsPerCue,
			MaxCueDuration:   segmenter.DefaultMaxCueDuration,
			MinPauseForSplit: segmenter.DefaultMinPauseForSplit,
		},
		Compact: Compact{
			MinSilenceBetweenWords: segmenter.DefaultMinSilenceBetweenWords,
			MaxCharactersPerCue:    segmenter.DefaultMaxCharactersPerCue,
		},
		WordLevel: WordLevel{
			SkipPunctuation: true,
		},
		Output: Output{
			Standard:           true,
			WordLevel:          true,
			Compact:            true,
			Transcript:         true,
			Timestamps:         true,
			TimestampsFormat:   defaultTimestampsFormat,
			LockTimeoutSeconds: defaultLockTimeout,
		},
		WhisperX: WhisperX{
			Model:     defaultWhisperXModel,
			VADMethod: defaultVADMethod,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
