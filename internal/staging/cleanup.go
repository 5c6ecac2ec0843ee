package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"chaptersaw/internal/logging"
)

// CleanStaleResult contains the outcome of a stale directory cleanup.
type CleanStaleResult struct {
	Removed []string
	Skipped []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes run directories older than maxAge. Directories whose
// lock is still held by a live run are skipped, never removed.
func CleanStale(stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	log := logging.NewComponentLogger(logger, "staging")

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run-") {
			continue
		}

		dirPath := filepath.Join(stagingDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if held := lockHeld(filepath.Join(dirPath, lockFileName)); held {
			result.Skipped = append(result.Skipped, dirPath)
			log.Debug("skipping live run directory", logging.String("path", dirPath))
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			log.Warn("failed to remove stale run directory",
				logging.String("path", dirPath),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, dirPath)
		log.Info("removed stale run directory",
			logging.String("path", dirPath),
			logging.Duration("age", time.Since(info.ModTime())),
		)
	}

	return result
}

// lockHeld reports whether another process currently holds the run lock.
func lockHeld(lockPath string) bool {
	if _, err := os.Stat(lockPath); err != nil {
		return false
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		// Unable to probe the lock; err on the safe side and treat as live.
		return true
	}
	if !ok {
		return true
	}
	_ = lock.Unlock()
	return false
}
