package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/pipeline"
	"chaptersaw/internal/scan"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var inputs []string
	var flags filterFlags
	var mergeOutput string
	var outputDir string
	var suffix string
	var autoChapters bool
	var chapterFormat string
	var dryRun bool
	var workers int
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract matching chapters into merged or per-file outputs",
		Long: `Extract scans every input for chapters, keeps the ones selected by the
keyword or regex filter, and either concatenates all matches into one merged
output (--merge) or writes one filtered file per input (the default).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
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
			if workers == 0 {
				workers = cfg.Execution.Workers
			}
			if suffix == "" {
				suffix = cfg.Output.SeparateSuffix
			}
			if chapterFormat == "" {
				chapterFormat = cfg.Output.ChapterFormat
			}

			scanner := scan.New(tc, logger)
			outcomes, err := scanner.Scan(cmd.Context(), files, scan.Options{
				Filter:  flags.config(),
				Workers: workers,
			})
			if err != nil {
				return err
			}

			if dryRun {
				printDryRun(cmd.OutOrStdout(), outcomes, mergeOutput, outputDir, suffix)
				return nil
			}

			bar := newProgressBar(scan.TotalMatches(outcomes), "Extracting", !noProgress)
			progress := func() { _ = bar.Add(1) }

			runner := pipeline.New(tc, cfg.Paths.StagingDir, logger)
			var results []chapter.ExtractionResult
			if mergeOutput != "" {
				results, err = runner.Merge(cmd.Context(), outcomes, pipeline.MergeOptions{
					OutputFile:    mergeOutput,
					AutoChapters:  autoChapters,
					ChapterFormat: chapterFormat,
					Workers:       workers,
					Progress:      progress,
				})
			} else {
				results, err = runner.Separate(cmd.Context(), outcomes, pipeline.SeparateOptions{
					OutputDir: outputDir,
					Suffix:    suffix,
					Workers:   workers,
					Progress:  progress,
				})
			}
			_ = bar.Finish()
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), results)
			if !chapter.AllSucceeded(results) {
				return fmt.Errorf("extraction failed for %d file(s)", countFailures(results))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input file or glob (repeatable)")
	cmd.Flags().StringVarP(&flags.keyword, "keyword", "k", "", "Keep chapters whose title contains this keyword")
	cmd.Flags().StringVarP(&flags.pattern, "regex", "e", "", "Keep chapters whose title matches this regular expression")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "Match the filter case-sensitively")
	cmd.Flags().BoolVar(&flags.exclude, "exclude", false, "Invert the filter and drop matching chapters")
	cmd.Flags().StringVarP(&mergeOutput, "merge", "m", "", "Merge all matches into this output file")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for per-file outputs (default: next to each source)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Filename suffix for per-file outputs")
	cmd.Flags().BoolVar(&autoChapters, "auto-chapters", false, "Write a chapter marker per segment into the merged output")
	cmd.Flags().StringVar(&chapterFormat, "chapter-format", "", "Marker title template with {num}, {title} and {file}")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be extracted without writing anything")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel worker count (0 uses the CPU count)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.MarkFlagsMutuallyExclusive("keyword", "regex")
	cmd.MarkFlagsMutuallyExclusive("merge", "output-dir")

	return cmd
}

func printDryRun(out io.Writer, outcomes []scan.Outcome, mergeOutput, outputDir, suffix string) {
	fmt.Fprintln(out, "Dry run; nothing will be written.")

	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			rows = append(rows, []string{outcome.SourceFile, "-", "-", outcome.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			outcome.SourceFile,
			strconv.Itoa(len(outcome.Plan.AllChapters)),
			strconv.Itoa(outcome.Plan.MatchCount()),
			"",
		})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Chapters", "Matched", "Error"}, rows, 2, 3))

	for _, outcome := range outcomes {
		if outcome.Plan == nil || outcome.Plan.MatchCount() == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", outcome.SourceFile)
		for _, ch := range outcome.Plan.Matched {
			fmt.Fprintf(out, "  %s\n", ch)
		}
	}

	total := scan.TotalMatches(outcomes)
	switch {
	case mergeOutput != "":
		fmt.Fprintf(out, "\nWould merge %d chapter(s) into %s\n", total, mergeOutput)
	case outputDir != "":
		fmt.Fprintf(out, "\nWould write filtered files with suffix %q to %s\n", suffix, outputDir)
	default:
		fmt.Fprintf(out, "\nWould write filtered files with suffix %q next to each source\n", suffix)
	}
}

func printSummary(out io.Writer, results []chapter.ExtractionResult) {
	fmt.Fprintln(out, "\nResults:")
	extracted := 0
	outputs := make([]string, 0, len(results))
	for _, result := range results {
		marker := "ok  "
		if !result.Success {
			marker = "fail"
		}
		fmt.Fprintf(out, "  [%s] %s\n", marker, result)
		if result.Success {
			extracted += result.ChaptersMatched
			if result.OutputFile != "" {
				outputs = append(outputs, result.OutputFile)
			}
		}
	}

	failed := countFailures(results)
	fmt.Fprintf(out, "Extracted %d chapter(s) from %d file(s)", extracted, len(results))
	if failed > 0 {
		fmt.Fprintf(out, ", %d failed", failed)
	}
	fmt.Fprintln(out)

	if len(outputs) > 0 {
		fmt.Fprintln(out, "Output files:")
		for _, output := range dedupeStrings(outputs) {
			fmt.Fprintf(out, "  %s\n", output)
		}
	}
}

func countFailures(results []chapter.ExtractionResult) int {
	failed := 0
	for _, result := range results {
		if !result.Success {
			failed++
		}
	}
	return failed
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
