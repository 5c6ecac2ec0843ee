package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chaptersaw/internal/scan"
)

type chapterReport struct {
	Index   int     `json:"index" yaml:"index"`
	Title   string  `json:"title" yaml:"title"`
	Start   float64 `json:"start_seconds" yaml:"start_seconds"`
	End     float64 `json:"end_seconds" yaml:"end_seconds"`
	Matched bool    `json:"matched" yaml:"matched"`
}

type fileChapterReport struct {
	File     string          `json:"file" yaml:"file"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
	Chapters []chapterReport `json:"chapters" yaml:"chapters"`
}

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	var inputs []string
	var flags filterFlags
	var format string

	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "List chapters found in the input files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, true); err != nil {
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
			files, err := resolveInputs(inputs)
			if err != nil {
				return err
			}

			scanner := scan.New(tc, logger)
			outcomes, err := scanner.Scan(cmd.Context(), files, scan.Options{Filter: flags.config()})
			if err != nil {
				return err
			}

			reports := buildChapterReports(outcomes)
			switch format {
			case formatJSON:
				return writeJSON(cmd, reports)
			case formatYAML:
				return writeYAML(cmd, reports)
			}

			out := cmd.OutOrStdout()
			filtered := flags.config().Active()
			for _, report := range reports {
				fmt.Fprintf(out, "%s\n", report.File)
				if report.Error != "" {
					fmt.Fprintf(out, "  error: %s\n", report.Error)
					continue
				}
				headers := []string{"#", "Title", "Start", "End"}
				if filtered {
					headers = append(headers, "Matched")
				}
				rows := make([][]string, 0, len(report.Chapters))
				for _, ch := range report.Chapters {
					row := []string{
						strconv.Itoa(ch.Index),
						ch.Title,
						fmt.Sprintf("%.2fs", ch.Start),
						fmt.Sprintf("%.2fs", ch.End),
					}
					if filtered {
						matched := ""
						if ch.Matched {
							matched = "yes"
						}
						row = append(row, matched)
					}
					rows = append(rows, row)
				}
				fmt.Fprintln(out, renderTable(headers, rows, 1, 3, 4))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input file or glob (repeatable)")
	cmd.Flags().StringVarP(&flags.keyword, "keyword", "k", "", "Mark chapters whose title contains this keyword")
	cmd.Flags().StringVarP(&flags.pattern, "regex", "e", "", "Mark chapters whose title matches this regular expression")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "Match the filter case-sensitively")
	cmd.Flags().BoolVar(&flags.exclude, "exclude", false, "Invert the filter")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("keyword", "regex")

	return cmd
}

func buildChapterReports(outcomes []scan.Outcome) []fileChapterReport {
	reports := make([]fileChapterReport, 0, len(outcomes))
	for _, outcome := range outcomes {
		report := fileChapterReport{File: outcome.SourceFile}
		if outcome.Err != nil {
			report.Error = outcome.Err.Error()
			reports = append(reports, report)
			continue
		}
		matched := make(map[int]bool, len(outcome.Plan.MatchedIndices))
		for _, idx := range outcome.Plan.MatchedIndices {
			matched[idx] = true
		}
		for i, ch := range outcome.Plan.AllChapters {
			report.Chapters = append(report.Chapters, chapterReport{
				Index:   ch.Index,
				Title:   ch.Title,
				Start:   ch.Start.Seconds(),
				End:     ch.End.Seconds(),
				Matched: matched[i],
			})
		}
		reports = append(reports, report)
	}
	return reports
}
