package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/logging"
)

// SetDefaultFlag rewrites one track's default disposition in place via
// mkvpropedit. trackID is the ffprobe stream index; mkvpropedit addresses
// tracks 1-based in container order, so the index shifts by one.
func (r *Runner) SetDefaultFlag(ctx context.Context, file string, trackID int, enabled bool) error {
	if !strings.EqualFold(filepath.Ext(file), ".mkv") {
		return chapter.WrapErr(chapter.ErrUnsupportedOperation, "set default flag", fmt.Sprintf("%s: in-place default-flag edits require an .mkv container", file), nil)
	}
	if trackID < 0 {
		return chapter.WrapErr(chapter.ErrToolchain, "set default flag", fmt.Sprintf("%s: invalid track id %d", file, trackID), nil)
	}

	flag := "0"
	if enabled {
		flag = "1"
	}
	cmd := exec.CommandContext(ctx, r.mkvpropedit, file,
		"--edit", fmt.Sprintf("track:@%d", trackID+1),
		"--set", "flag-default="+flag,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "set default flag", file, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}

	r.logger.Debug("set default flag",
		logging.String("file", file),
		logging.Int("track", trackID),
		logging.Bool("enabled", enabled),
	)
	return nil
}
