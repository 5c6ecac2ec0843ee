package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chaptersaw/internal/chapter"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := writeExecutable(t, dir, "ffmpeg")

	statuses := CheckBinaries([]Requirement{
		{Name: "FFmpeg", Command: ffmpeg},
		{Name: "FFprobe", Command: filepath.Join(dir, "missing-ffprobe")},
		{Name: "Empty", Command: "  "},
	})

	if !statuses[0].Available {
		t.Fatalf("expected ffmpeg available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected missing ffprobe with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("unexpected empty-command status: %+v", statuses[2])
	}
}

func TestVerifyFailsWithToolNotFound(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := writeExecutable(t, dir, "ffmpeg")

	err := Verify([]Requirement{
		{Name: "FFmpeg", Command: ffmpeg},
		{Name: "FFprobe", Command: filepath.Join(dir, "nope")},
	})
	if !errors.Is(err, chapter.ErrToolNotFound) {
		t.Fatalf("expected tool-not-found error, got %v", err)
	}
}

func TestVerifyIgnoresMissingOptional(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := writeExecutable(t, dir, "ffmpeg")
	ffprobe := writeExecutable(t, dir, "ffprobe")

	err := Verify(Requirements(ffmpeg, ffprobe, filepath.Join(dir, "no-mkvpropedit")))
	if err != nil {
		t.Fatalf("optional tool should not fail verification: %v", err)
	}
}
