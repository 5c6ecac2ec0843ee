package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chaptersaw/internal/medianame"
)

type parseReport struct {
	Filename     string `json:"filename" yaml:"filename"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	EpisodeID    string `json:"episode_id,omitempty" yaml:"episode_id,omitempty"`
	Season       int    `json:"season,omitempty" yaml:"season,omitempty"`
	Episode      int    `json:"episode,omitempty" yaml:"episode,omitempty"`
	EpisodeCount int    `json:"episode_count,omitempty" yaml:"episode_count,omitempty"`
	Year         int    `json:"year,omitempty" yaml:"year,omitempty"`
	Source       string `json:"source,omitempty" yaml:"source,omitempty"`
	Resolution   string `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	VideoCodec   string `json:"video_codec,omitempty" yaml:"video_codec,omitempty"`
	AudioCodec   string `json:"audio_codec,omitempty" yaml:"audio_codec,omitempty"`
	ReleaseGroup string `json:"release_group,omitempty" yaml:"release_group,omitempty"`
}

func newParseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:         "parse FILENAME...",
		Short:       "Show metadata detected from release-style filenames",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, false); err != nil {
				return err
			}

			reports := make([]parseReport, 0, len(args))
			for _, arg := range args {
				info := medianame.Parse(arg)
				reports = append(reports, parseReport{
					Filename:     arg,
					Title:        info.Title,
					EpisodeID:    info.EpisodeID(),
					Season:       info.Season,
					Episode:      info.Episode,
					EpisodeCount: info.EpisodeCount,
					Year:         info.Year,
					Source:       info.Source,
					Resolution:   info.Resolution,
					VideoCodec:   info.VideoCodec,
					AudioCodec:   info.AudioCodec,
					ReleaseGroup: info.ReleaseGroup,
				})
			}

			if format == formatJSON {
				return writeJSON(cmd, reports)
			}

			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				year := ""
				if report.Year > 0 {
					year = strconv.Itoa(report.Year)
				}
				rows = append(rows, []string{
					report.Filename,
					report.Title,
					report.EpisodeID,
					year,
					report.Resolution,
					report.Source,
					report.VideoCodec,
					report.ReleaseGroup,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Filename", "Title", "Episode", "Year", "Resolution", "Source", "Codec", "Group"},
				rows, 4))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table or json")
	return cmd
}
