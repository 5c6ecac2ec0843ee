// Package scan builds per-file match plans without touching any file's
// bytes. Scanning runs fully before the execution phase writes anything, so
// dry-run output and the actual extraction are derived from the same plans.
package scan

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/chapter/filter"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/toolchain"
)

// Outcome is one input file's scan result: either a plan or a per-file
// error, never both. A plan with zero matches is a valid outcome.
type Outcome struct {
	SourceFile string
	Plan       *chapter.MatchPlan
	Err        error
}

// Options controls one scan invocation.
type Options struct {
	Filter filter.Config
	// Workers caps concurrent probes; 0 uses the available CPU count and
	// 1 forces sequential probing. Outcome order always matches input
	// order regardless of completion order.
	Workers int
}

// Scanner probes and filters chapters for batches of input files.
type Scanner struct {
	tc     toolchain.Toolchain
	logger *slog.Logger
}

// New constructs a Scanner around the given toolchain.
func New(tc toolchain.Toolchain, logger *slog.Logger) *Scanner {
	return &Scanner{
		tc:     tc,
		logger: logging.NewComponentLogger(logger, "scan"),
	}
}

// Scan probes every input file and applies the configured filter. Per-file
// failures are captured in their outcome; only configuration problems (an
// invalid filter) fail the whole call.
func (s *Scanner) Scan(ctx context.Context, files []string, opts Options) ([]Outcome, error) {
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(files))
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, file := range files {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[idx] = s.scanOne(ctx, path, opts.Filter)
		}(i, file)
	}
	wg.Wait()

	return outcomes, nil
}

func (s *Scanner) scanOne(ctx context.Context, file string, cfg filter.Config) Outcome {
	outcome := Outcome{SourceFile: file}

	if err := fileutil.ValidateFormat(file); err != nil {
		outcome.Err = err
		return outcome
	}
	if _, err := os.Stat(file); err != nil {
		outcome.Err = chapter.WrapErr(chapter.ErrFileNotFound, "scan", file, err)
		return outcome
	}

	chapters, err := s.tc.ProbeChapters(ctx, file)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	matched, indices, err := filter.Apply(chapters, cfg)
	if err != nil {
		// Filter config was validated up front; a failure here means the
		// pattern compiled then, so surface it as this file's error.
		outcome.Err = err
		return outcome
	}

	outcome.Plan = &chapter.MatchPlan{
		SourceFile:     file,
		AllChapters:    chapters,
		Matched:        matched,
		MatchedIndices: indices,
	}
	s.logger.Debug("scanned file",
		logging.String("file", file),
		logging.Int("chapters", len(chapters)),
		logging.Int("matched", len(matched)),
	)
	return outcome
}

// TotalMatches sums the matched chapter count across all plans.
func TotalMatches(outcomes []Outcome) int {
	total := 0
	for _, outcome := range outcomes {
		if outcome.Plan != nil {
			total += outcome.Plan.MatchCount()
		}
	}
	return total
}
