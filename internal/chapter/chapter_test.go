package chapter_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"chaptersaw/internal/chapter"
)

func TestChapterDuration(t *testing.T) {
	ch := chapter.Chapter{Title: "Opening", Start: 90 * time.Second, End: 180 * time.Second}
	if ch.Duration() != 90*time.Second {
		t.Fatalf("unexpected duration: %v", ch.Duration())
	}
}

func TestChapterString(t *testing.T) {
	ch := chapter.Chapter{Title: "Episode 1", Start: 0, End: 1425*time.Second + 500*time.Millisecond}
	got := ch.String()
	if got != "Episode 1 (0.00s - 1425.50s)" {
		t.Fatalf("unexpected string: %q", got)
	}
}

func TestFailureResult(t *testing.T) {
	res := chapter.Failure("bad.mkv", errors.New("probe exploded"))
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.ErrorMessage != "probe exploded" {
		t.Fatalf("unexpected message: %q", res.ErrorMessage)
	}
	if res.ChaptersMatched != 0 {
		t.Fatalf("expected zero matched, got %d", res.ChaptersMatched)
	}
}

func TestResultStringIncludesCounts(t *testing.T) {
	res := chapter.ExtractionResult{
		SourceFile:      "show.mkv",
		ChaptersFound:   8,
		ChaptersMatched: 3,
		Success:         true,
	}
	got := res.String()
	if !strings.Contains(got, "3/8") || !strings.Contains(got, "ok") {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestAllSucceeded(t *testing.T) {
	results := []chapter.ExtractionResult{
		{SourceFile: "a.mkv", Success: true},
		{SourceFile: "b.mkv", Success: false, ErrorMessage: "boom"},
	}
	if chapter.AllSucceeded(results) {
		t.Fatal("expected batch failure with one failed result")
	}
	if !chapter.AllSucceeded(results[:1]) {
		t.Fatal("expected success for all-success slice")
	}
	if !chapter.AllSucceeded(nil) {
		t.Fatal("expected empty batch to count as success")
	}
}

func TestErrorTaxonomyRoot(t *testing.T) {
	sentinels := []error{
		chapter.ErrConfiguration,
		chapter.ErrToolNotFound,
		chapter.ErrUnsupportedFormat,
		chapter.ErrFileNotFound,
		chapter.ErrMissingChapterInfo,
		chapter.ErrNoChaptersMatched,
		chapter.ErrInvalidPattern,
		chapter.ErrTrackNotFound,
		chapter.ErrUnsupportedOperation,
		chapter.ErrToolchain,
	}
	for _, sentinel := range sentinels {
		if !errors.Is(sentinel, chapter.Err) {
			t.Fatalf("sentinel %v does not wrap the root error", sentinel)
		}
	}
}

func TestWrapErrKeepsMarkerAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := chapter.WrapErr(chapter.ErrToolchain, "extract range", "video.mkv", cause)
	if !errors.Is(err, chapter.ErrToolchain) {
		t.Fatalf("expected toolchain marker, got %v", err)
	}
	if !errors.Is(err, chapter.Err) {
		t.Fatalf("expected root marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "video.mkv") {
		t.Fatalf("expected file context in message: %q", err.Error())
	}
}

func TestWrapErrWithoutCause(t *testing.T) {
	err := chapter.WrapErr(chapter.ErrTrackNotFound, "set default", "movie.mkv", nil)
	if !errors.Is(err, chapter.ErrTrackNotFound) {
		t.Fatalf("expected track marker, got %v", err)
	}
}
