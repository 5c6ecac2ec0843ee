// Package chapter defines the value types shared across the scan and
// execution phases: chapters, container tracks, per-file match plans, and
// per-file extraction results.
//
// Values in this package are immutable snapshots. Chapters and tracks are
// rebuilt on every probe; nothing here is cached between pipeline runs. The
// package also roots the error taxonomy (see errors.go) so callers can match
// any chaptersaw failure with a single errors.Is check.
package chapter
