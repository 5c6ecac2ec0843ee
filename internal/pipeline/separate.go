package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/scan"
	"chaptersaw/internal/staging"
)

// SeparateOptions controls a separate-mode run.
type SeparateOptions struct {
	// OutputDir receives the filtered files; empty keeps each output next
	// to its source.
	OutputDir string
	Suffix    string
	Workers   int
	Progress  ProgressFunc
}

// Separate writes one filtered output per input file. Files are fully
// independent: one file's failure never affects another, and a plan with
// zero matches is a success with no output. Result order matches input
// order regardless of worker completion order.
func (p *Pipeline) Separate(ctx context.Context, outcomes []scan.Outcome, opts SeparateOptions) ([]chapter.ExtractionResult, error) {
	if opts.Suffix == "" {
		opts.Suffix = "_filtered"
	}

	run, err := staging.NewRun(p.stagingDir, p.logger)
	if err != nil {
		return nil, err
	}
	defer run.Release()

	results := make([]chapter.ExtractionResult, len(outcomes))
	sem := make(chan struct{}, workerCount(opts.Workers, len(outcomes)))
	var wg sync.WaitGroup
	for i, outcome := range outcomes {
		wg.Add(1)
		go func(idx int, outcome scan.Outcome) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = p.separateOne(ctx, outcome, idx, run, opts)
		}(i, outcome)
	}
	wg.Wait()

	return results, nil
}

func (p *Pipeline) separateOne(ctx context.Context, outcome scan.Outcome, fileIndex int, run *staging.Run, opts SeparateOptions) chapter.ExtractionResult {
	if outcome.Err != nil {
		return chapter.Failure(outcome.SourceFile, outcome.Err)
	}

	plan := outcome.Plan
	result := chapter.ExtractionResult{
		SourceFile:      plan.SourceFile,
		ChaptersFound:   len(plan.AllChapters),
		ChaptersMatched: plan.MatchCount(),
	}
	if plan.MatchCount() == 0 {
		result.Success = true
		return result
	}

	// The file index keys the segment names so two inputs sharing a stem
	// cannot collide inside the shared staging run.
	stem := fmt.Sprintf("%03d_%s", fileIndex, fileutil.Stem(plan.SourceFile))
	segments := make([]string, len(plan.Matched))
	for i, ch := range plan.Matched {
		segments[i] = run.SegmentPath(stem, i)
		if err := p.tc.ExtractRange(ctx, plan.SourceFile, ch.Start, ch.End, segments[i]); err != nil {
			result.ErrorMessage = err.Error()
			return result
		}
		if opts.Progress != nil {
			opts.Progress()
		}
	}

	output := separateOutputPath(plan.SourceFile, opts.OutputDir, opts.Suffix)
	if err := p.tc.Concatenate(ctx, segments, output); err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	p.logger.Info("filtered file written",
		logging.String("source", plan.SourceFile),
		logging.String("output", output),
		logging.Int("chapters", plan.MatchCount()),
	)
	result.OutputFile = output
	result.Extracted = plan.Matched
	result.Success = true
	return result
}

func separateOutputPath(source, outputDir, suffix string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	name := fileutil.Stem(source) + suffix + filepath.Ext(source)
	return filepath.Join(dir, name)
}
