package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/logging"
)

// ExtractRange stream-copies [start, end) of file into dest. No re-encode
// happens; cuts land on the nearest keyframes the way ffmpeg -c copy does.
func (r *Runner) ExtractRange(ctx context.Context, file string, start, end time.Duration, dest string) error {
	if end <= start {
		return chapter.WrapErr(chapter.ErrToolchain, "extract range", fmt.Sprintf("%s: end %v not after start %v", file, end, start), nil)
	}

	cmd := exec.CommandContext(ctx, r.ffmpeg,
		"-v", "error",
		"-hide_banner",
		"-i", file,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-map", "0",
		"-c", "copy",
		"-y", dest,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "extract range", file, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}

	r.logger.Debug("extracted segment",
		logging.String("file", file),
		logging.Duration("start", start),
		logging.Duration("end", end),
		logging.String("dest", dest),
	)
	return nil
}

// Concatenate joins segments into output using the concat demuxer. The
// segment list file lives next to the first segment so relative resolution
// never comes into play (-safe 0 plus absolute paths).
func (r *Runner) Concatenate(ctx context.Context, segments []string, output string) error {
	if len(segments) == 0 {
		return chapter.WrapErr(chapter.ErrToolchain, "concatenate", "no segments to merge", nil)
	}

	listPath := filepath.Join(filepath.Dir(segments[0]), "concat_list.txt")
	if err := writeConcatList(listPath, segments); err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "concatenate", output, err)
	}
	defer os.Remove(listPath)

	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return chapter.WrapErr(chapter.ErrToolchain, "concatenate", output, err)
		}
	}

	cmd := exec.CommandContext(ctx, r.ffmpeg,
		"-v", "error",
		"-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", output,
	)
	cmdOutput, err := cmd.CombinedOutput()
	if err != nil {
		// A half-written output is worse than none.
		_ = os.Remove(output)
		return chapter.WrapErr(chapter.ErrToolchain, "concatenate", output, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(cmdOutput))))
	}

	r.logger.Debug("concatenated segments",
		logging.Int("segments", len(segments)),
		logging.String("output", output),
	)
	return nil
}

// writeConcatList emits the concat demuxer list file. Paths are absolute and
// single quotes are escaped per the demuxer's quoting rules.
func writeConcatList(listPath string, segments []string) error {
	var b strings.Builder
	for _, segment := range segments {
		abs, err := filepath.Abs(segment)
		if err != nil {
			return fmt.Errorf("resolve segment path %q: %w", segment, err)
		}
		b.WriteString("file '")
		b.WriteString(escapeConcatPath(abs))
		b.WriteString("'\n")
	}
	return os.WriteFile(listPath, []byte(b.String()), 0o644)
}

func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
