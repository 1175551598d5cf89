package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"captioner/internal/deps"
	"captioner/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := isTerminal(out)
			failures := 0

			printSection := func(title string, lines []string) {
				for _, line := range renderSectionHeader(title, colorize) {
					fmt.Fprintln(out, line)
				}
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
			}

			configLine := renderStatusLine("Config", statusOK, ctx.configPath, colorize)
			if !fileExists(ctx.configPath) {
				configLine = renderStatusLine("Config", statusInfo, "defaults (no file at "+ctx.configPath+")", colorize)
			}
			printSection("Configuration", []string{configLine})

			binaries, failed := statusLines(deps.CheckBinaries(deps.TranscriptionRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.UVXBinary())), colorize)
			failures += failed
			printSection("External tools", binaries)

			dirs := []deps.DirectoryRequirement{
				{Name: "Output", Path: cfg.Paths.OutputDir, Optional: true},
				{Name: "Work", Path: cfg.Paths.WorkDir},
				{Name: "State", Path: cfg.Paths.StateDir},
				{Name: "Logs", Path: cfg.Paths.LogDir},
			}
			dirLines, failed := statusLines(deps.CheckDirectories(dirs), colorize)
			failures += failed
			printSection("Directories", dirLines)

			if failures > 0 {
				return services.Wrap(services.ErrConfiguration, "doctor", "", fmt.Sprintf("%d check(s) failed", failures), nil)
			}
			fmt.Fprintln(out, "All required checks passed")
			return nil
		},
	}
}
