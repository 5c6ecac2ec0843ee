package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chaptersaw/internal/tracks"
)

func newSetDefaultCommand(ctx *commandContext) *cobra.Command {
	var audioLang string
	var subtitleLang string
	var trackID int

	cmd := &cobra.Command{
		Use:   "set-default FILE",
		Short: "Set default track flags by language or track id",
		Long: `Set-default rewrites the default-track flags of an MKV file in place.
Select tracks by language (--audio and --subtitle are applied independently)
or name one track explicitly with --track-id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			tc, err := ctx.ensureToolchain()
			if err != nil {
				return err
			}

			manager := tracks.NewManager(tc, logger)
			attempts, err := manager.SetDefaults(cmd.Context(), args[0], tracks.SetDefaultRequest{
				AudioLanguage:    audioLang,
				SubtitleLanguage: subtitleLang,
				TrackID:          trackID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, attempt := range attempts {
				if attempt.Err != nil {
					fmt.Fprintf(out, "  [fail] %s: %v\n", attempt.Selector, attempt.Err)
					continue
				}
				fmt.Fprintf(out, "  [ok]   %s: track %d is now default\n", attempt.Selector, attempt.Track.ID)
			}
			if !tracks.AllSucceeded(attempts) {
				return fmt.Errorf("not all track selections could be applied")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&audioLang, "audio", "a", "", "Language of the audio track to make default")
	cmd.Flags().StringVarP(&subtitleLang, "subtitle", "s", "", "Language of the subtitle track to make default")
	cmd.Flags().IntVarP(&trackID, "track-id", "t", -1, "Explicit track id to make default")
	return cmd
}
