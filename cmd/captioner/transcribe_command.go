package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"captioner/internal/config"
	"captioner/internal/fileutil"
	"captioner/internal/logging"
	"captioner/internal/notifications"
	"captioner/internal/services"
	"captioner/internal/services/whisperx"
	"captioner/internal/workdir"
)

// newWhisperXService is swapped out in tests.
var newWhisperXService = func(cfg *config.Config, cctx *commandContext, cmd *cobra.Command) (*whisperx.Service, error) {
	logger, err := cctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	svc := whisperx.NewService(whisperx.Config{
		Model:       cfg.WhisperX.Model,
		CUDAEnabled: cfg.WhisperX.CUDAEnabled,
		VADMethod:   cfg.WhisperX.VADMethod,
		HFToken:     cfg.WhisperX.HFToken,
		Language:    cfg.WhisperX.Language,
	}, cfg.FFmpegBinary(), cfg.UVXBinary(), logger)
	svc.WithProber(whisperx.ProbeWith(cfg.FFprobeBinary()))
	return svc, nil
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	opts := &generateOptions{}
	var keepRaw bool

	cmd := &cobra.Command{
		Use:   "transcribe <media>",
		Short: "Transcribe a media file with WhisperX and generate subtitles",
		Long: "Transcribe extracts the first audio stream with ffmpeg, runs WhisperX through uvx and\n" +
			"feeds the word timings to the same pipeline as generate. Intermediate files stay under\n" +
			"paths.work_dir until paths.work_retention_hours passes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if !fileutil.FileExists(source) {
				return services.Wrap(services.ErrNotFound, "transcribe", "prepare", source, nil)
			}

			notifier := notifications.NewService(cfg)
			started := time.Now()
			report, err := transcribe(cmd, ctx, cfg, logger, source, opts, keepRaw)
			if err != nil {
				notify(cmd.Context(), logger, func(c context.Context) error {
					return notifier.NotifyError(c, err, filepath.Base(source))
				})
				return err
			}
			if !report.Skipped {
				notify(cmd.Context(), logger, func(c context.Context) error {
					return notifier.NotifyTranscriptionCompleted(c, source, report.Words, time.Since(started))
				})
			}
			return printReport(cmd, report, opts.json)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&keepRaw, "keep-raw", false, "Copy the WhisperX JSON next to the generated files")
	return cmd
}

func transcribe(cmd *cobra.Command, cctx *commandContext, cfg *config.Config, logger *slog.Logger, source string, opts *generateOptions, keepRaw bool) (generateReport, error) {
	if cleaned := workdir.CleanStale(cmd.Context(), cfg.Paths.WorkDir, cfg.WorkRetention(), logger); len(cleaned.Removed) > 0 {
		logger.Info("removed stale work directories",
			logging.Int("count", len(cleaned.Removed)),
			logging.String(logging.FieldEventType, "work_cleanup"),
		)
	}

	svc, err := newWhisperXService(cfg, cctx, cmd)
	if err != nil {
		return generateReport{}, err
	}
	runCtx := logging.WithStage(cmd.Context(), "transcribe")
	result, err := svc.Transcribe(runCtx, source, filepath.Join(cfg.Paths.WorkDir, workdir.DirName(source)))
	if err != nil {
		return generateReport{}, err
	}

	report, err := runGeneration(cmd, cctx, source, result.Words, opts)
	if err != nil {
		return report, err
	}
	if keepRaw && report.OutputBase != "" {
		raw := report.OutputBase + "_whisperx.json"
		if err := fileutil.CopyFile(result.JSONPath, raw); err != nil {
			return report, services.Wrap(services.ErrTransient, "transcribe", "keep raw", raw, err)
		}
		if !opts.json {
			fmt.Fprintf(cmd.OutOrStdout(), "Raw WhisperX output kept at %s\n", raw)
		}
	}
	return report, nil
}

// notify sends a notification without letting delivery problems fail the run.
func notify(ctx context.Context, logger *slog.Logger, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			logging.String(logging.FieldImpact, "result was not pushed"),
		)
	}
}
