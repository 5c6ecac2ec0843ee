package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/scan"
	"chaptersaw/internal/staging"
)

// MergeOptions controls a merge-mode run.
type MergeOptions struct {
	OutputFile    string
	AutoChapters  bool
	ChapterFormat string
	Workers       int
	Progress      ProgressFunc
}

// segmentJob is one chapter range to extract. GlobalIndex is the position in
// the file-order by chapter-order sequence that the concatenation step must
// reproduce.
type segmentJob struct {
	plan        *chapter.MatchPlan
	ch          chapter.Chapter
	globalIndex int
	dest        string
}

// Merge extracts every matched chapter across all plans and concatenates
// them, in input-file order then chapter order, into opts.OutputFile. One
// result is returned per input file. A batch with zero matches overall fails
// with ErrNoChaptersMatched; any execution failure aborts the whole merge
// and is reported on every contributing file's result, with no partial
// output left behind.
func (p *Pipeline) Merge(ctx context.Context, outcomes []scan.Outcome, opts MergeOptions) ([]chapter.ExtractionResult, error) {
	if opts.OutputFile == "" {
		return nil, chapter.WrapErr(chapter.ErrConfiguration, "merge", "", fmt.Errorf("no output file given"))
	}
	if scan.TotalMatches(outcomes) == 0 {
		return nil, chapter.WrapErr(chapter.ErrNoChaptersMatched, "merge", "", fmt.Errorf("no chapters matched in any input"))
	}

	// A merge is a single combined artifact, so a file that failed to scan
	// poisons the whole run. Files that did scan keep their match counts in
	// the report even though nothing is produced.
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			return p.mergeAborted(outcomes, fmt.Errorf("%s: %w", outcome.SourceFile, outcome.Err)), nil
		}
	}

	run, err := staging.NewRun(p.stagingDir, p.logger)
	if err != nil {
		return nil, err
	}
	defer run.Release()

	jobs := buildSegmentJobs(outcomes, run)
	if err := p.extractAll(ctx, jobs, opts.Workers, opts.Progress); err != nil {
		return p.mergeAborted(outcomes, err), nil
	}

	segments := make([]string, len(jobs))
	for i, job := range jobs {
		segments[i] = job.dest
	}
	if err := p.tc.Concatenate(ctx, segments, opts.OutputFile); err != nil {
		return p.mergeAborted(outcomes, err), nil
	}

	if opts.AutoChapters {
		markers := buildMarkers(jobs, opts.ChapterFormat)
		if err := p.tc.WriteChapterMarkers(ctx, opts.OutputFile, markers); err != nil {
			return p.mergeAborted(outcomes, err), nil
		}
	}

	p.logger.Info("merge complete",
		logging.String("output", opts.OutputFile),
		logging.Int("segments", len(jobs)),
	)

	results := make([]chapter.ExtractionResult, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = chapter.ExtractionResult{
			SourceFile:      outcome.SourceFile,
			OutputFile:      opts.OutputFile,
			ChaptersFound:   len(outcome.Plan.AllChapters),
			ChaptersMatched: outcome.Plan.MatchCount(),
			Extracted:       outcome.Plan.Matched,
			Success:         true,
		}
	}
	return results, nil
}

// buildSegmentJobs flattens the plans into the canonical global sequence.
func buildSegmentJobs(outcomes []scan.Outcome, run *staging.Run) []segmentJob {
	var jobs []segmentJob
	for _, outcome := range outcomes {
		stem := fileutil.Stem(outcome.SourceFile)
		for _, ch := range outcome.Plan.Matched {
			idx := len(jobs)
			jobs = append(jobs, segmentJob{
				plan:        outcome.Plan,
				ch:          ch,
				globalIndex: idx,
				dest:        run.SegmentPath(stem, idx),
			})
		}
	}
	return jobs
}

// extractAll fans extraction out over a bounded worker pool and joins before
// returning. The first failure is returned; remaining in-flight extractions
// finish but their segments are discarded with the staging run.
func (p *Pipeline) extractAll(ctx context.Context, jobs []segmentJob, workers int, progress ProgressFunc) error {
	errs := make([]error, len(jobs))
	sem := make(chan struct{}, workerCount(workers, len(jobs)))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job segmentJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			errs[idx] = p.tc.ExtractRange(ctx, job.plan.SourceFile, job.ch.Start, job.ch.End, job.dest)
			if progress != nil {
				progress()
			}
		}(i, job)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// buildMarkers synthesizes one chapter marker per extracted segment with
// times rebased onto the merged output's timeline.
func buildMarkers(jobs []segmentJob, format string) []chapter.Chapter {
	markers := make([]chapter.Chapter, len(jobs))
	var offset time.Duration
	for i, job := range jobs {
		length := job.ch.Duration()
		markers[i] = chapter.Chapter{
			Title: formatChapterTitle(format, i+1, job.ch.Title, fileutil.Stem(job.plan.SourceFile)),
			Start: offset,
			End:   offset + length,
			Index: i,
		}
		offset += length
	}
	return markers
}

// mergeAborted builds the aggregate failure report for an abandoned merge.
func (p *Pipeline) mergeAborted(outcomes []scan.Outcome, cause error) []chapter.ExtractionResult {
	p.logger.Error("merge aborted", logging.Error(cause))
	results := make([]chapter.ExtractionResult, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			results[i] = chapter.Failure(outcome.SourceFile, outcome.Err)
			continue
		}
		results[i] = chapter.ExtractionResult{
			SourceFile:      outcome.SourceFile,
			ChaptersFound:   len(outcome.Plan.AllChapters),
			ChaptersMatched: outcome.Plan.MatchCount(),
			Success:         false,
			ErrorMessage:    fmt.Sprintf("merge aborted: %v", cause),
		}
	}
	return results
}
