package chapter

import (
	"fmt"
	"time"
)

// Chapter is a named time interval within one media file.
type Chapter struct {
	Title string
	Start time.Duration
	End   time.Duration
	// Index is the chapter's position within the source file, or -1 when
	// the chapter was synthesized rather than probed.
	Index int
}

// Duration returns the length of the chapter interval.
func (c Chapter) Duration() time.Duration {
	return c.End - c.Start
}

// String renders the chapter the way listings and dry-run output print it.
func (c Chapter) String() string {
	return fmt.Sprintf("%s (%.2fs - %.2fs)", c.Title, c.Start.Seconds(), c.End.Seconds())
}

// TrackType classifies a container stream.
type TrackType string

const (
	TrackTypeUnknown  TrackType = "unknown"
	TrackTypeVideo    TrackType = "video"
	TrackTypeAudio    TrackType = "audio"
	TrackTypeSubtitle TrackType = "subtitle"
)

// Track is a read-only snapshot of one stream in a media container. A
// set-default operation rewrites the file on disk; callers re-probe to
// observe the change rather than mutating a Track in place.
type Track struct {
	ID         int
	Type       TrackType
	Codec      string
	Language   string
	Name       string
	Default    bool
	Forced     bool
	Width      int
	Height     int
	Channels   int
	SampleRate int
}

// MatchPlan is the scan phase's validated description of what the execution
// phase would extract from one file. MatchedIndices is a strictly increasing
// subsequence of AllChapters indices, and Matched holds the chapters at those
// indices in the same order. A plan with zero matches is valid.
type MatchPlan struct {
	SourceFile     string
	AllChapters    []Chapter
	Matched        []Chapter
	MatchedIndices []int
}

// MatchCount returns the number of chapters the plan selects.
func (p MatchPlan) MatchCount() int {
	return len(p.Matched)
}

// ExtractionResult records the outcome for one input file. Exactly one of
// Success with OutputFile, or !Success with ErrorMessage, holds once the
// pipeline returns. ChaptersMatched is always populated; zero is valid.
type ExtractionResult struct {
	SourceFile      string
	OutputFile      string
	ChaptersFound   int
	ChaptersMatched int
	Extracted       []Chapter
	Success         bool
	ErrorMessage    string
}

// Failure constructs a failed result for source carrying err's message.
func Failure(source string, err error) ExtractionResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ExtractionResult{SourceFile: source, Success: false, ErrorMessage: msg}
}

// String summarizes the result for log and summary output.
func (r ExtractionResult) String() string {
	status := "ok"
	if !r.Success {
		status = "failed: " + r.ErrorMessage
	}
	return fmt.Sprintf("%s: %d/%d chapters matched - %s", r.SourceFile, r.ChaptersMatched, r.ChaptersFound, status)
}

// AllSucceeded reports whether every result in the batch succeeded. An empty
// batch counts as success; the caller decides whether that is acceptable.
func AllSucceeded(results []ExtractionResult) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
