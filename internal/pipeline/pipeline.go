// Package pipeline runs the execution phase over scan outcomes: extracting
// matched chapter ranges into a staging workspace and assembling either one
// merged output or one filtered output per input. Nothing here re-probes or
// re-filters; the scan phase's plans are authoritative.
package pipeline

import (
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"chaptersaw/internal/logging"
	"chaptersaw/internal/toolchain"
)

// Pipeline executes match plans against the media toolchain.
type Pipeline struct {
	tc         toolchain.Toolchain
	stagingDir string
	logger     *slog.Logger
}

// New constructs a Pipeline that stages temporary segments under stagingDir.
func New(tc toolchain.Toolchain, stagingDir string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		tc:         tc,
		stagingDir: stagingDir,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
}

// ProgressFunc is called once per completed extraction step. It may be
// invoked from multiple goroutines.
type ProgressFunc func()

func workerCount(requested, units int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > units {
		n = units
	}
	if n < 1 {
		n = 1
	}
	return n
}

// formatChapterTitle expands the {num}, {title} and {file} placeholders.
// num is the 1-based position in the merged output's global sequence.
func formatChapterTitle(format string, num int, title, fileStem string) string {
	if format == "" {
		format = "{title}"
	}
	return strings.NewReplacer(
		"{num}", strconv.Itoa(num),
		"{title}", title,
		"{file}", fileStem,
	).Replace(format)
}
