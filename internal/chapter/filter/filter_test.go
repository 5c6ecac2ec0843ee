package filter_test

import (
	"errors"
	"testing"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/chapter/filter"
)

func sampleChapters() []chapter.Chapter {
	return []chapter.Chapter{
		{Title: "Opening", Start: 0, End: 90 * time.Second, Index: 0},
		{Title: "Episode 1", Start: 90 * time.Second, End: 20 * time.Minute, Index: 1},
		{Title: "Episode 2", Start: 20 * time.Minute, End: 40 * time.Minute, Index: 2},
		{Title: "Credits", Start: 40 * time.Minute, End: 42 * time.Minute, Index: 3},
	}
}

func titles(chapters []chapter.Chapter) []string {
	out := make([]string, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestByKeywordCaseInsensitiveByDefault(t *testing.T) {
	got := filter.ByKeyword(sampleChapters(), "episode", false, false)
	if !equalStrings(titles(got), []string{"Episode 1", "Episode 2"}) {
		t.Fatalf("unexpected matches: %v", titles(got))
	}
}

func TestByKeywordCaseSensitive(t *testing.T) {
	got := filter.ByKeyword(sampleChapters(), "episode", true, false)
	if len(got) != 0 {
		t.Fatalf("expected no case-sensitive matches, got %v", titles(got))
	}
	got = filter.ByKeyword(sampleChapters(), "Episode", true, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", titles(got))
	}
}

func TestByKeywordExcludePreservesOrder(t *testing.T) {
	got := filter.ByKeyword(sampleChapters(), "Episode", false, true)
	if !equalStrings(titles(got), []string{"Opening", "Credits"}) {
		t.Fatalf("unexpected exclusions: %v", titles(got))
	}
}

func TestExcludeIsComplement(t *testing.T) {
	chapters := sampleChapters()
	cfg := filter.Config{Keyword: "ep"}
	kept, keptIdx, err := filter.Apply(chapters, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Exclude = true
	dropped, droppedIdx, err := filter.Apply(chapters, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept)+len(dropped) != len(chapters) {
		t.Fatalf("complement sizes do not add up: %d + %d != %d", len(kept), len(dropped), len(chapters))
	}
	seen := make(map[int]bool)
	for _, idx := range append(append([]int{}, keptIdx...), droppedIdx...) {
		if seen[idx] {
			t.Fatalf("index %d appears in both partitions", idx)
		}
		seen[idx] = true
	}
}

func TestByRegex(t *testing.T) {
	got, err := filter.ByRegex(sampleChapters(), `Episode \d+`, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected matches: %v", titles(got))
	}
}

func TestByRegexCaseSensitivity(t *testing.T) {
	got, err := filter.ByRegex(sampleChapters(), `episode \d+`, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", titles(got))
	}
	got, err = filter.ByRegex(sampleChapters(), `episode \d+`, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", titles(got))
	}
}

func TestByRegexInvalidPattern(t *testing.T) {
	_, err := filter.ByRegex(sampleChapters(), `[unclosed`, false, false)
	if !errors.Is(err, chapter.ErrInvalidPattern) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}

func TestByPredicate(t *testing.T) {
	got := filter.ByPredicate(sampleChapters(), func(ch chapter.Chapter) bool {
		return ch.Duration() >= 10*time.Minute
	})
	if !equalStrings(titles(got), []string{"Episode 1", "Episode 2"}) {
		t.Fatalf("unexpected matches: %v", titles(got))
	}
}

func TestApplyIndicesStrictlyIncreasing(t *testing.T) {
	matched, indices, err := filter.Apply(sampleChapters(), filter.Config{Keyword: "e"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != len(indices) {
		t.Fatalf("matched/index length mismatch: %d vs %d", len(matched), len(indices))
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("indices not strictly increasing: %v", indices)
		}
	}
}

func TestApplyMatchAllWhenUnconfigured(t *testing.T) {
	matched, _, err := filter.Apply(sampleChapters(), filter.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != 4 {
		t.Fatalf("expected all chapters, got %d", len(matched))
	}
}

func TestValidateRejectsKeywordAndPattern(t *testing.T) {
	err := filter.Config{Keyword: "a", Pattern: "b"}.Validate()
	if !errors.Is(err, chapter.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateCompilesPatternEagerly(t *testing.T) {
	err := filter.Config{Pattern: `(`}.Validate()
	if !errors.Is(err, chapter.ErrInvalidPattern) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
	if err := (filter.Config{Pattern: `Episode \d+`}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
