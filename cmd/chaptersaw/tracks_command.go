package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/language"
	"chaptersaw/internal/tracks"
)

type trackReport struct {
	ID       int    `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Codec    string `json:"codec" yaml:"codec"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Default  bool   `json:"default" yaml:"default"`
	Forced   bool   `json:"forced" yaml:"forced"`
}

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tracks FILE",
		Short: "List the tracks in a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, false); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			tc, err := ctx.ensureToolchain()
			if err != nil {
				return err
			}

			manager := tracks.NewManager(tc, logger)
			list, err := manager.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			reports := make([]trackReport, 0, len(list))
			for _, track := range list {
				reports = append(reports, trackReport{
					ID:       track.ID,
					Type:     string(track.Type),
					Codec:    track.Codec,
					Language: track.Language,
					Name:     track.Name,
					Detail:   trackDetail(track),
					Default:  track.Default,
					Forced:   track.Forced,
				})
			}

			if format == formatJSON {
				return writeJSON(cmd, reports)
			}

			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				rows = append(rows, []string{
					strconv.Itoa(report.ID),
					report.Type,
					report.Codec,
					language.DisplayName(report.Language),
					report.Name,
					report.Detail,
					yesNo(report.Default),
					yesNo(report.Forced),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Type", "Codec", "Language", "Name", "Detail", "Default", "Forced"},
				rows, 1))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table or json")
	return cmd
}

// trackDetail summarizes the type-specific properties: picture size for
// video, channel layout and sample rate for audio.
func trackDetail(track chapter.Track) string {
	switch track.Type {
	case chapter.TrackTypeVideo:
		if track.Width > 0 && track.Height > 0 {
			return fmt.Sprintf("%dx%d", track.Width, track.Height)
		}
	case chapter.TrackTypeAudio:
		if track.Channels > 0 && track.SampleRate > 0 {
			return fmt.Sprintf("%dch %dHz", track.Channels, track.SampleRate)
		}
		if track.Channels > 0 {
			return fmt.Sprintf("%dch", track.Channels)
		}
	}
	return ""
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
