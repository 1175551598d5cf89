package config

import (
	"errors"
	"fmt"
	"net/url"

	langpkg "captioner/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStandard(); err != nil {
		return err
	}
	if err := c.validateCompact(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkRetentionHours < 0 {
		return errors.New("paths.work_retention_hours must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	parsed, err := url.Parse(topic)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic: expected an http(s) URL, got %q", topic)
	}
	return nil
}

func (c *Config) validateStandard() error {
	if c.Standard.MaxWordsPerCue < 1 {
		return errors.New("standard.max_words_per_cue must be at least 1")
	}
	if c.Standard.MaxCueDuration <= 0 {
		return errors.New("standard.max_cue_duration must be positive")
	}
	if c.Standard.MinPauseForSplit < 0 {
		return errors.New("standard.min_pause_for_split must not be negative")
	}
	return nil
}

func (c *Config) validateCompact() error {
	if c.Compact.MaxCharactersPerCue < 1 {
		return errors.New("compact.max_characters_per_cue must be at least 1")
	}
	if c.Compact.MinSilenceBetweenWords < 0 {
		return errors.New("compact.min_silence_between_words must not be negative")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.TimestampsFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("output.timestamps_format: unsupported value %q (use json or yaml)", c.Output.TimestampsFormat)
	}
	o := c.Output
	if !o.Standard && !o.WordLevel && !o.Compact && !o.Transcript && !o.Timestamps {
		return errors.New("output: at least one artifact must be enabled")
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("whisperx.vad_method: unsupported value %q (use silero or pyannote)", c.WhisperX.VADMethod)
	}
	if c.WhisperX.Language != "" && langpkg.ToISO2(c.WhisperX.Language) == "" {
		return fmt.Errorf("whisperx.language: unrecognized language %q", c.WhisperX.Language)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Keep < 0 {
		return errors.New("history.keep must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
