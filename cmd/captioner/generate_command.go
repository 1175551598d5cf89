package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"captioner/internal/config"
	"captioner/internal/history"
	"captioner/internal/logging"
	"captioner/internal/segmenter"
	"captioner/internal/services"
	"captioner/internal/subtitles"
	"captioner/internal/transcript"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type generateOptions struct {
	output          string
	inputFormat     string
	maxWords        int
	maxDuration     float64
	minPause        float64
	maxChars        int
	minSilence      float64
	keepPunctuation bool
	dumpFormat      string
	unique          bool
	force           bool
	copy            bool
	json            bool
}

func (o *generateOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.output, "output", "o", "", "Directory for generated files (default: next to the input)")
	flags.IntVar(&o.maxWords, "max-words", 0, "Standard layout: maximum words per cue")
	flags.Float64Var(&o.maxDuration, "max-duration", 0, "Standard layout: maximum cue duration in seconds")
	flags.Float64Var(&o.minPause, "min-pause", 0, "Standard layout: pause in seconds that starts a new cue")
	flags.IntVar(&o.maxChars, "max-chars", 0, "Compact layout: maximum characters per cue")
	flags.Float64Var(&o.minSilence, "min-silence", 0, "Compact layout: silence in seconds that starts a new cue")
	flags.BoolVar(&o.keepPunctuation, "keep-punctuation", false, "Word-level layout: keep punctuation-only tokens")
	flags.StringVar(&o.dumpFormat, "dump-format", "", "Timestamp dump format: json or yaml")
	flags.BoolVar(&o.unique, "unique", false, "Append a random suffix to output names")
	flags.BoolVar(&o.force, "force", false, "Regenerate even when history shows identical outputs exist")
	flags.BoolVar(&o.copy, "copy", false, "Copy the transcript to the clipboard")
	flags.BoolVar(&o.json, "json", false, "Print the run summary as JSON")
}

// apply merges explicitly set flags over the configured values.
func (o *generateOptions) apply(cmd *cobra.Command, cfg *config.Config) (segmenter.Options, subtitles.DumpFormat, error) {
	opts := cfg.SegmenterOptions()
	flags := cmd.Flags()
	if flags.Changed("max-words") {
		opts.Standard.MaxWordsPerCue = o.maxWords
	}
	if flags.Changed("max-duration") {
		opts.Standard.MaxCueDuration = o.maxDuration
	}
	if flags.Changed("min-pause") {
		opts.Standard.MinPauseForSplit = o.minPause
	}
	if flags.Changed("max-chars") {
		opts.Compact.MaxCharactersPerCue = o.maxChars
	}
	if flags.Changed("min-silence") {
		opts.Compact.MinSilenceBetweenWords = o.minSilence
	}
	if flags.Changed("keep-punctuation") {
		opts.WordLevel.SkipPunctuation = !o.keepPunctuation
	}
	formatName := cfg.Output.TimestampsFormat
	if flags.Changed("dump-format") {
		formatName = o.dumpFormat
	}
	dump, err := subtitles.ParseDumpFormat(formatName)
	if err != nil {
		return opts, dump, services.Wrap(services.ErrValidation, "generate", "flags", "", err)
	}
	return opts, dump, nil
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <words.json|words.yaml>",
		Short: "Generate subtitles and transcripts from a word timing file",
		Long: "Generate reads word-level timestamps (a word list, a WhisperX JSON result, or a YAML dump)\n" +
			"and writes standard, word-level and vertical-video SRT files plus a transcript and a\n" +
			"timestamp dump.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := transcript.ParseFormat(opts.inputFormat)
			if err != nil {
				return services.Wrap(services.ErrValidation, "generate", "flags", "", err)
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			words, err := loadWords(source, format)
			if err != nil {
				return err
			}
			report, err := runGeneration(cmd, ctx, source, words, opts)
			if err != nil {
				return err
			}
			return printReport(cmd, report, opts.json)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.inputFormat, "format", "", "Input format: words, whisperx or yaml (default: detect)")
	return cmd
}

func loadWords(path string, format transcript.Format) ([]segmenter.WordTiming, error) {
	words, err := transcript.LoadFormat(path, format)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "generate", "load words", path, err)
	}
	return words, nil
}

type generateReport struct {
	RunID       string                        `json:"run_id"`
	Source      string                        `json:"source"`
	OutputBase  string                        `json:"output_base"`
	Fingerprint string                        `json:"fingerprint"`
	Skipped     bool                          `json:"skipped"`
	Words       int                           `json:"words"`
	Repaired    *transcript.RepairStats       `json:"repaired,omitempty"`
	Cues        map[segmenter.Layout]int      `json:"cues"`
	Artifacts   map[subtitles.Artifact]string `json:"artifacts"`
	Transcript  string                        `json:"transcript"`
	Copied      bool                          `json:"copied,omitempty"`
}

// runGeneration validates the words, skips work already recorded in history,
// writes the artifacts and records the run.
func runGeneration(cmd *cobra.Command, cctx *commandContext, source string, words []segmenter.WordTiming, opts *generateOptions) (generateReport, error) {
	report := generateReport{Source: source}
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return report, err
	}
	logger, err := cctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return report, err
	}
	segOpts, dump, err := opts.apply(cmd, cfg)
	if err != nil {
		return report, err
	}

	report.RunID = uuid.NewString()
	ctx := logging.WithRunID(cmd.Context(), report.RunID)
	logger = logging.NewComponentLogger(logger, "generate")

	words, stats, err := prepareWords(logging.WithStage(ctx, "validate"), logger, cfg, words)
	if err != nil {
		return report, err
	}
	if stats.Changed() {
		report.Repaired = &stats
	}
	report.Words = len(words)

	report.Fingerprint, err = transcript.Fingerprint(words, segOpts)
	if err != nil {
		return report, services.Wrap(services.ErrTransient, "generate", "fingerprint", "", err)
	}

	outputDir := cfg.Paths.OutputDir
	if strings.TrimSpace(opts.output) != "" {
		if outputDir, err = config.ExpandPath(opts.output); err != nil {
			return report, err
		}
	}
	base := subtitles.OutputBase(source, outputDir, opts.unique || cfg.Output.UniqueNames)
	report.OutputBase = base

	store := openHistory(ctx, logger, cfg)
	if store != nil {
		defer store.Close()
	}
	if store != nil && !opts.force {
		wanted := outputSet(cfg).Paths(base, dump)
		if previous := findReusableRun(ctx, logger, store, report.Fingerprint, base, wanted); previous != nil {
			logging.WithContext(ctx, logger).Info("outputs up to date; skipping generation",
				logging.String(logging.FieldEventType, "generation_skipped"),
				logging.String("previous_run", previous.ID),
				logging.String("base", base),
			)
			report.Skipped = true
			report.Cues = map[segmenter.Layout]int{
				segmenter.LayoutStandard:  previous.StandardCues,
				segmenter.LayoutWordLevel: previous.WordLevelCues,
				segmenter.LayoutCompact:   previous.CompactCues,
			}
			report.Artifacts = previousArtifacts(previous)
			report.Transcript = subtitles.Transcript(words)
			return report, copyTranscript(ctx, logger, opts, &report)
		}
	}

	svc := subtitles.NewService(cfg, logger)
	result, err := svc.Write(logging.WithStage(ctx, "write"), subtitles.Request{
		BasePath:   base,
		Words:      words,
		Options:    segOpts,
		Outputs:    outputSet(cfg),
		DumpFormat: dump,
	})
	if err != nil {
		return report, err
	}
	report.Cues = result.CueCounts
	report.Artifacts = result.Paths
	report.Transcript = result.Transcript

	if store != nil {
		recordRun(ctx, logger, cfg, store, &history.Run{
			ID:            report.RunID,
			Fingerprint:   report.Fingerprint,
			SourcePath:    source,
			OutputBase:    base,
			WordCount:     len(words),
			StandardCues:  result.CueCounts[segmenter.LayoutStandard],
			WordLevelCues: result.CueCounts[segmenter.LayoutWordLevel],
			CompactCues:   result.CueCounts[segmenter.LayoutCompact],
			Artifacts:     result.Written(),
		})
	}
	return report, copyTranscript(ctx, logger, opts, &report)
}

func prepareWords(ctx context.Context, logger *slog.Logger, cfg *config.Config, words []segmenter.WordTiming) ([]segmenter.WordTiming, transcript.RepairStats, error) {
	var stats transcript.RepairStats
	err := transcript.Validate(words)
	if err == nil {
		return words, stats, nil
	}
	if !cfg.Input.Repair {
		return nil, stats, services.Wrap(services.ErrValidation, "generate", "validate words",
			"enable input.repair to fix timings automatically", err)
	}
	words, stats = transcript.Repair(words)
	logging.WarnWithContext(logging.WithContext(ctx, logger), "word timings repaired", "timings_repaired",
		logging.String("first_problem", err.Error()),
		logging.Int("filled", stats.FilledTimings),
		logging.Int("clamped", stats.ClampedStarts),
		logging.Int("extended", stats.ExtendedEnds),
		logging.Int("dropped", stats.DroppedUntimed),
		logging.Bool("reordered", stats.Reordered),
		logging.String(logging.FieldErrorHint, "inspect the transcription if subtitles look misaligned"),
		logging.String(logging.FieldImpact, "some cue timings were adjusted"),
	)
	return words, stats, nil
}

func outputSet(cfg *config.Config) subtitles.OutputSet {
	return subtitles.OutputSet{
		subtitles.ArtifactStandard:   cfg.Output.Standard,
		subtitles.ArtifactWordLevel:  cfg.Output.WordLevel,
		subtitles.ArtifactCompact:    cfg.Output.Compact,
		subtitles.ArtifactTranscript: cfg.Output.Transcript,
		subtitles.ArtifactTimestamps: cfg.Output.Timestamps,
	}
}

func openHistory(ctx context.Context, logger *slog.Logger, cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the history database or set history.enabled = false"),
			logging.String(logging.FieldImpact, "runs are not recorded and will not be skipped"),
		)
		return nil
	}
	return store
}

// findReusableRun returns the latest run with the same fingerprint when it
// wrote every artifact in wanted under base and those files still exist.
func findReusableRun(ctx context.Context, logger *slog.Logger, store *history.Store, fingerprint, base string, wanted []string) *history.Run {
	previous, err := store.LatestByFingerprint(ctx, fingerprint)
	if err != nil {
		logging.WithContext(ctx, logger).Debug("history lookup failed", logging.Error(err))
		return nil
	}
	if previous == nil || previous.OutputBase != base || !previous.ArtifactsExist() {
		return nil
	}
	for _, path := range wanted {
		if !slices.Contains(previous.Artifacts, path) {
			return nil
		}
	}
	return previous
}

func previousArtifacts(run *history.Run) map[subtitles.Artifact]string {
	paths := make(map[subtitles.Artifact]string, len(run.Artifacts))
	for _, path := range run.Artifacts {
		for _, artifact := range subtitles.Artifacts {
			for _, dump := range []subtitles.DumpFormat{subtitles.DumpJSON, subtitles.DumpYAML} {
				if path == subtitles.ArtifactPath(run.OutputBase, artifact, dump) {
					paths[artifact] = path
				}
			}
		}
	}
	return paths
}

func recordRun(ctx context.Context, logger *slog.Logger, cfg *config.Config, store *history.Store, run *history.Run) {
	log := logging.WithContext(ctx, logger)
	if err := store.Record(ctx, run); err != nil {
		logging.WarnWithContext(log, "record run failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the next identical run will not be skipped"),
		)
		return
	}
	if cfg.History.Keep > 0 {
		if removed, err := store.Prune(ctx, cfg.History.Keep); err != nil {
			log.Debug("history prune failed", logging.Error(err))
		} else if removed > 0 {
			log.Debug("history pruned", logging.Int("removed", int(removed)))
		}
	}
}

func copyTranscript(ctx context.Context, logger *slog.Logger, opts *generateOptions, report *generateReport) error {
	if !opts.copy {
		return nil
	}
	if err := copyToClipboard(report.Transcript); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "clipboard copy failed", "clipboard_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install xclip, xsel or wl-clipboard"),
			logging.String(logging.FieldImpact, "transcript was written to disk only"),
		)
		return nil
	}
	report.Copied = true
	return nil
}

func printReport(cmd *cobra.Command, report generateReport, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, report)
	}
	out := cmd.OutOrStdout()
	if report.Skipped {
		fmt.Fprintf(out, "Outputs for %s are up to date (use --force to regenerate)\n", report.Source)
	} else {
		fmt.Fprintf(out, "Generated subtitles for %s (%d words)\n", report.Source, report.Words)
	}
	if report.Repaired != nil {
		fmt.Fprintln(out, "Word timings were repaired before segmentation")
	}
	for _, layout := range segmenter.Layouts {
		fmt.Fprintf(out, "  %-10s %d cues\n", layout, report.Cues[layout])
	}
	writeArtifacts(out, report.Artifacts)
	if report.Copied {
		fmt.Fprintln(out, "Transcript copied to clipboard")
	}
	return nil
}

func writeArtifacts(out io.Writer, paths map[subtitles.Artifact]string) {
	for _, artifact := range subtitles.Artifacts {
		if path, ok := paths[artifact]; ok {
			fmt.Fprintf(out, "  %-10s %s\n", artifact, path)
		}
	}
}
