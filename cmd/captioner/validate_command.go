package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"captioner/internal/services"
	"captioner/internal/subtitles"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate <file.srt>...",
		Short:       "Check SRT files for format problems",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				issues := subtitles.ValidateSRT(path)
				if len(issues) == 0 {
					fmt.Fprintf(out, "%s: OK\n", path)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s: %s\n", path, strings.Join(issues, ", "))
			}
			if failed > 0 {
				return services.Wrap(services.ErrValidation, "validate", "", fmt.Sprintf("%d of %d files have issues", failed, len(args)), nil)
			}
			return nil
		},
	}
}
