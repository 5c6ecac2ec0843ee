// Package toolchain is the sole boundary to byte-level media operations. It
// shells out to ffprobe, ffmpeg, and mkvpropedit behind a narrow
// probe/extract/concatenate/tag interface so the scan and execution phases
// never touch container bytes themselves.
//
// Every call is independent and blocking; nothing is retried here. Failures
// carry the underlying tool diagnostic wrapped in the chapter error taxonomy.
package toolchain

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/logging"
)

// Toolchain exposes the media operations the pipeline depends on.
type Toolchain interface {
	// ProbeChapters returns the file's chapters in start-time order. A file
	// with no chapter data at all yields ErrMissingChapterInfo.
	ProbeChapters(ctx context.Context, file string) ([]chapter.Chapter, error)
	// ProbeTracks returns a snapshot of the container's streams.
	ProbeTracks(ctx context.Context, file string) ([]chapter.Track, error)
	// ExtractRange stream-copies [start, end) of file into dest.
	ExtractRange(ctx context.Context, file string, start, end time.Duration, dest string) error
	// Concatenate joins segments, in order, into output via the concat
	// demuxer with stream copy.
	Concatenate(ctx context.Context, segments []string, output string) error
	// WriteChapterMarkers rewrites file's chapter atoms to exactly the
	// provided markers. MKV output only.
	WriteChapterMarkers(ctx context.Context, file string, markers []chapter.Chapter) error
	// SetDefaultFlag toggles the default disposition of one track in
	// place. Only MKV containers support the in-place rewrite.
	SetDefaultFlag(ctx context.Context, file string, trackID int, enabled bool) error
}

// Runner is the production Toolchain backed by external binaries.
type Runner struct {
	ffmpeg      string
	ffprobe     string
	mkvpropedit string
	logger      *slog.Logger
}

// Option tweaks Runner construction.
type Option func(*Runner)

// WithLogger attaches a logger used for debug-level command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logging.NewComponentLogger(logger, "toolchain")
		}
	}
}

// WithMkvPropEdit overrides the mkvpropedit binary path.
func WithMkvPropEdit(binary string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(binary) != "" {
			r.mkvpropedit = strings.TrimSpace(binary)
		}
	}
}

// NewRunner builds a Runner around the given ffmpeg/ffprobe binaries. Empty
// paths fall back to resolving the bare names from PATH.
func NewRunner(ffmpeg, ffprobe string, opts ...Option) *Runner {
	r := &Runner{
		ffmpeg:      defaultBinary(ffmpeg, "ffmpeg"),
		ffprobe:     defaultBinary(ffprobe, "ffprobe"),
		mkvpropedit: "mkvpropedit",
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultBinary(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
