package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"captioner/internal/workdir"
)

func newWorkCommand(ctx *commandContext) *cobra.Command {
	workCmd := &cobra.Command{
		Use:   "work",
		Short: "Manage transcription work directories",
	}
	workCmd.AddCommand(newWorkListCommand(ctx))
	workCmd.AddCommand(newWorkCleanCommand(ctx))
	return workCmd
}

func newWorkListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcription work directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dirs, err := workdir.ListDirectories(cfg.Paths.WorkDir)
			if err != nil {
				return fmt.Errorf("list work directories: %w", err)
			}
			var totalSize int64
			for _, dir := range dirs {
				totalSize += dir.Size
			}

			if asJSON {
				if dirs == nil {
					dirs = []workdir.DirInfo{}
				}
				return writeJSON(cmd, map[string]any{
					"work_dir":         cfg.Paths.WorkDir,
					"directories":      dirs,
					"total_size_bytes": totalSize,
				})
			}

			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintln(out, "No work directories found")
				return nil
			}
			rows := make([][]string, 0, len(dirs))
			for _, dir := range dirs {
				rows = append(rows, []string{
					dir.Name,
					humanize.Time(dir.ModTime),
					humanize.IBytes(uint64(dir.Size)),
				})
			}
			renderRows(out, []string{"Directory", "Modified", "Size"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight})
			fmt.Fprintf(out, "Total: %d directories, %s\n", len(dirs), humanize.IBytes(uint64(totalSize)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print directories as JSON")
	return cmd
}

func newWorkCleanCommand(ctx *commandContext) *cobra.Command {
	var cleanAll bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale transcription work directories",
		Long: "Remove work directories older than paths.work_retention_hours.\n\n" +
			"Use --all to remove every work directory regardless of age.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var result workdir.CleanResult
			label := "stale"
			switch {
			case cleanAll:
				label = "work"
				result = workdir.CleanAll(cmd.Context(), cfg.Paths.WorkDir, logger)
			case cfg.WorkRetention() <= 0:
				fmt.Fprintln(cmd.OutOrStdout(), "Work retention disabled (paths.work_retention_hours = 0); use --all")
				return nil
			default:
				result = workdir.CleanStale(cmd.Context(), cfg.Paths.WorkDir, cfg.WorkRetention(), logger)
			}
			return printCleanResult(cmd, result, label)
		},
	}
	cmd.Flags().BoolVar(&cleanAll, "all", false, "Remove all work directories")
	return cmd
}

func printCleanResult(cmd *cobra.Command, result workdir.CleanResult, label string) error {
	out := cmd.OutOrStdout()
	if len(result.Removed) == 0 && len(result.Errors) == 0 {
		fmt.Fprintf(out, "No %s directories to clean\n", label)
		return nil
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "Removed %d %s directories, %d errors\n", len(result.Removed), label, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  Error: %s: %v\n", e.Path, e.Error)
		}
		return nil
	}
	fmt.Fprintf(out, "Removed %d %s directories\n", len(result.Removed), label)
	return nil
}
