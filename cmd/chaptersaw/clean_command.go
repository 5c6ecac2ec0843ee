package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chaptersaw/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAgeHours int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale staging directories left by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			hours := maxAgeHours
			if hours <= 0 {
				hours = cfg.Execution.StaleRunHours
			}

			result := staging.CleanStale(cfg.Paths.StagingDir, time.Duration(hours)*time.Hour, logger)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale run(s), skipped %d live run(s)\n", len(result.Removed), len(result.Skipped))
			for _, removed := range result.Removed {
				fmt.Fprintf(out, "  removed %s\n", removed)
			}
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(out, "  warning: %s: %v\n", cleanupErr.Path, cleanupErr.Error)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeHours, "max-age", 0, "Remove runs older than this many hours (0 uses the configured value)")
	return cmd
}
