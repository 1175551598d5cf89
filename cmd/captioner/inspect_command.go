package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"captioner/internal/config"
	"captioner/internal/segmenter"
	"captioner/internal/services"
	"captioner/internal/subtitles"
	"captioner/internal/transcript"
)

type inspectedCue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var layoutName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <words-file|subtitles.srt>",
		Short: "Show cues as a table",
		Long: "Inspect renders the cues of an SRT file, or the cues a word timing file would produce\n" +
			"for the selected layout, as a table. Output is tab-separated when not attached to a terminal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			var cues []inspectedCue
			if strings.EqualFold(filepath.Ext(path), ".srt") {
				cues, err = inspectSRT(path)
			} else {
				layout, ok := segmenter.ParseLayout(strings.ToLower(strings.TrimSpace(layoutName)))
				if !ok {
					return services.Wrap(services.ErrValidation, "inspect", "flags", fmt.Sprintf("unknown layout %q", layoutName), nil)
				}
				cues, err = inspectWords(cfg, path, layout)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, cues)
			}
			out := cmd.OutOrStdout()
			if len(cues) == 0 {
				fmt.Fprintln(out, "No cues")
				return nil
			}
			rows := make([][]string, 0, len(cues))
			for _, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(cue.Index),
					segmenter.FormatTimestamp(cue.Start),
					segmenter.FormatTimestamp(cue.End),
					strconv.FormatFloat(cue.End-cue.Start, 'f', 2, 64),
					strconv.Itoa(utf8.RuneCountInString(cue.Text)),
					strings.ReplaceAll(cue.Text, "\n", " / "),
				})
			}
			renderRows(out,
				[]string{"#", "Start", "End", "Secs", "Chars", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&layoutName, "layout", "l", string(segmenter.LayoutStandard), "Layout for word files: standard, word or compact")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cues as JSON")
	return cmd
}

func inspectSRT(path string) ([]inspectedCue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "inspect", "open", path, err)
	}
	defer file.Close()
	parsed, err := subtitles.ParseSRT(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "inspect", "parse", path, err)
	}
	cues := make([]inspectedCue, 0, len(parsed))
	for _, cue := range parsed {
		cues = append(cues, inspectedCue{Index: cue.Index, Start: cue.Start, End: cue.End, Text: cue.Text})
	}
	return cues, nil
}

func inspectWords(cfg *config.Config, path string, layout segmenter.Layout) ([]inspectedCue, error) {
	words, err := loadWords(path, transcript.FormatAuto)
	if err != nil {
		return nil, err
	}
	if err := transcript.Validate(words); err != nil {
		if !cfg.Input.Repair {
			return nil, services.Wrap(services.ErrValidation, "inspect", "validate words", "", err)
		}
		words, _ = transcript.Repair(words)
	}
	segmented := segmenter.Segment(words, layout, cfg.SegmenterOptions())
	cues := make([]inspectedCue, 0, len(segmented))
	for i, cue := range segmented {
		cues = append(cues, inspectedCue{Index: i + 1, Start: cue.Start, End: cue.End, Text: cue.Text})
	}
	return cues, nil
}
