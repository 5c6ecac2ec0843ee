package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/chapter/filter"
	"chaptersaw/internal/logging"
)

type fakeToolchain struct {
	chapters map[string][]chapter.Chapter
	probeErr map[string]error
}

func (f *fakeToolchain) ProbeChapters(ctx context.Context, file string) ([]chapter.Chapter, error) {
	if err := f.probeErr[file]; err != nil {
		return nil, err
	}
	return f.chapters[file], nil
}

func (f *fakeToolchain) ProbeTracks(ctx context.Context, file string) ([]chapter.Track, error) {
	return nil, nil
}

func (f *fakeToolchain) ExtractRange(ctx context.Context, file string, start, end time.Duration, dest string) error {
	return nil
}

func (f *fakeToolchain) Concatenate(ctx context.Context, segments []string, output string) error {
	return nil
}

func (f *fakeToolchain) WriteChapterMarkers(ctx context.Context, file string, markers []chapter.Chapter) error {
	return nil
}

func (f *fakeToolchain) SetDefaultFlag(ctx context.Context, file string, trackID int, enabled bool) error {
	return nil
}

func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func testChapters() []chapter.Chapter {
	return []chapter.Chapter{
		{Title: "Intro", Start: 0, End: 90 * time.Second, Index: 0},
		{Title: "Part One", Start: 90 * time.Second, End: 20 * time.Minute, Index: 1},
		{Title: "Credits", Start: 20 * time.Minute, End: 22 * time.Minute, Index: 2},
	}
}

func TestScanBuildsPlans(t *testing.T) {
	dir := t.TempDir()
	file := touchFile(t, dir, "movie.mkv")

	tc := &fakeToolchain{chapters: map[string][]chapter.Chapter{file: testChapters()}}
	scanner := New(tc, logging.NewNop())

	outcomes, err := scanner.Scan(context.Background(), []string{file}, Options{
		Filter: filter.Config{Keyword: "part"},
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	outcome := outcomes[0]
	if outcome.Err != nil {
		t.Fatalf("unexpected outcome error: %v", outcome.Err)
	}
	if outcome.Plan == nil {
		t.Fatal("expected a plan")
	}
	if len(outcome.Plan.AllChapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(outcome.Plan.AllChapters))
	}
	if outcome.Plan.MatchCount() != 1 {
		t.Fatalf("expected 1 match, got %d", outcome.Plan.MatchCount())
	}
	if outcome.Plan.Matched[0].Title != "Part One" {
		t.Fatalf("unexpected match: %q", outcome.Plan.Matched[0].Title)
	}
}

func TestScanOutcomeOrderMatchesInput(t *testing.T) {
	dir := t.TempDir()
	chapters := map[string][]chapter.Chapter{}
	files := make([]string, 8)
	for i := range files {
		files[i] = touchFile(t, dir, fmt.Sprintf("episode%02d.mkv", i))
		chapters[files[i]] = testChapters()
	}

	scanner := New(&fakeToolchain{chapters: chapters}, logging.NewNop())
	outcomes, err := scanner.Scan(context.Background(), files, Options{Workers: 4})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for i, outcome := range outcomes {
		if outcome.SourceFile != files[i] {
			t.Fatalf("outcome %d is %s, want %s", i, outcome.SourceFile, files[i])
		}
		if outcome.Plan == nil {
			t.Fatalf("outcome %d missing plan: %v", i, outcome.Err)
		}
	}
}

func TestScanPerFileErrorsDoNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good := touchFile(t, dir, "good.mkv")
	missing := filepath.Join(dir, "missing.mkv")
	unsupported := touchFile(t, dir, "notes.txt")
	brokenProbe := touchFile(t, dir, "broken.mkv")

	tc := &fakeToolchain{
		chapters: map[string][]chapter.Chapter{good: testChapters()},
		probeErr: map[string]error{
			brokenProbe: chapter.WrapErr(chapter.ErrToolchain, "probe chapters", brokenProbe, errors.New("exit status 1")),
		},
	}
	scanner := New(tc, logging.NewNop())

	outcomes, err := scanner.Scan(context.Background(), []string{good, missing, unsupported, brokenProbe}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if outcomes[0].Err != nil || outcomes[0].Plan == nil {
		t.Fatalf("good file should have a plan, got err %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, chapter.ErrFileNotFound) {
		t.Fatalf("missing file error = %v, want ErrFileNotFound", outcomes[1].Err)
	}
	if !errors.Is(outcomes[2].Err, chapter.ErrUnsupportedFormat) {
		t.Fatalf("unsupported file error = %v, want ErrUnsupportedFormat", outcomes[2].Err)
	}
	if !errors.Is(outcomes[3].Err, chapter.ErrToolchain) {
		t.Fatalf("probe failure error = %v, want ErrToolchain", outcomes[3].Err)
	}
	for _, outcome := range outcomes[1:] {
		if !errors.Is(outcome.Err, chapter.Err) {
			t.Fatalf("outcome error %v does not wrap the root error", outcome.Err)
		}
	}
}

func TestScanInvalidFilterFailsFast(t *testing.T) {
	scanner := New(&fakeToolchain{}, logging.NewNop())
	_, err := scanner.Scan(context.Background(), []string{"a.mkv"}, Options{
		Filter: filter.Config{Pattern: "["},
	})
	if !errors.Is(err, chapter.ErrInvalidPattern) {
		t.Fatalf("err = %v, want ErrInvalidPattern", err)
	}
}

func TestTotalMatches(t *testing.T) {
	plan := &chapter.MatchPlan{Matched: testChapters()[:2]}
	outcomes := []Outcome{
		{Plan: plan},
		{Err: errors.New("boom")},
		{Plan: &chapter.MatchPlan{}},
	}
	if got := TotalMatches(outcomes); got != 2 {
		t.Fatalf("TotalMatches = %d, want 2", got)
	}
}
