// Package staging manages per-run temporary segment workspaces.
//
// Each pipeline invocation owns one uniquely-named run directory under the
// configured staging root. The directory holds the extracted segments and the
// concat list for exactly one run and is removed when the run releases it,
// on success and failure alike. A file lock held for the lifetime of the run
// lets `chaptersaw clean` distinguish abandoned directories from live ones.
package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"chaptersaw/internal/logging"
)

const lockFileName = ".chaptersaw.lock"

// Run is one invocation's scratch space for extracted segments.
type Run struct {
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
}

// NewRun creates a locked run directory under baseDir.
func NewRun(baseDir string, logger *slog.Logger) (*Run, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging root %q: %w", baseDir, err)
	}

	dir := filepath.Join(baseDir, "run-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory %q: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("lock run directory %q: %w", dir, err)
	}
	if !ok {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("run directory %q already locked", dir)
	}

	return &Run{
		dir:    dir,
		lock:   lock,
		logger: logging.NewComponentLogger(logger, "staging"),
	}, nil
}

// Dir returns the run directory path.
func (r *Run) Dir() string {
	return r.dir
}

// SegmentPath returns the canonical path for one extracted segment. The
// global index keeps names unique across source files within a run.
func (r *Run) SegmentPath(sourceStem string, globalIndex int) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_segment_%04d.mkv", sourceStem, globalIndex))
}

// Release unlocks and removes the run directory with everything in it.
// Safe to call more than once; callers defer it as soon as the run exists.
func (r *Run) Release() error {
	if r.dir == "" {
		return nil
	}
	if err := r.lock.Unlock(); err != nil {
		r.logger.Warn("failed to release run lock",
			logging.String("dir", r.dir),
			logging.Error(err),
		)
	}
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("remove run directory %q: %w", r.dir, err)
	}
	r.logger.Debug("released run directory", logging.String("dir", r.dir))
	r.dir = ""
	return nil
}
