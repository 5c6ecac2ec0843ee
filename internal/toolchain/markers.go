package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/logging"
)

// WriteChapterMarkers replaces file's chapter atoms with the provided
// markers. The markers are serialized to an ffmetadata file and re-muxed
// with stream copy into a sibling temp file that then replaces the original.
// Only MKV output carries rewritten chapter atoms reliably.
func (r *Runner) WriteChapterMarkers(ctx context.Context, file string, markers []chapter.Chapter) error {
	if len(markers) == 0 {
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", "no markers provided", nil)
	}
	if !strings.EqualFold(filepath.Ext(file), ".mkv") {
		return chapter.WrapErr(chapter.ErrUnsupportedOperation, "write chapter markers", fmt.Sprintf("%s: markers require an .mkv output", file), nil)
	}

	dir := filepath.Dir(file)
	metaFile, err := os.CreateTemp(dir, "chapters-*.ffmeta")
	if err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", file, err)
	}
	metaPath := metaFile.Name()
	defer os.Remove(metaPath)

	if _, err := metaFile.WriteString(ffmetadata(markers)); err != nil {
		metaFile.Close()
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", file, err)
	}
	if err := metaFile.Close(); err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", file, err)
	}

	tagged := filepath.Join(dir, fileutil.Stem(file)+".chapters.tmp.mkv")
	defer os.Remove(tagged)

	cmd := exec.CommandContext(ctx, r.ffmpeg,
		"-v", "error",
		"-hide_banner",
		"-i", file,
		"-i", metaPath,
		"-map", "0",
		"-map_metadata", "1",
		"-map_chapters", "1",
		"-c", "copy",
		"-y", tagged,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", file, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}

	if err := os.Rename(tagged, file); err != nil {
		return chapter.WrapErr(chapter.ErrToolchain, "write chapter markers", file, err)
	}

	r.logger.Debug("wrote chapter markers",
		logging.String("file", file),
		logging.Int("markers", len(markers)),
	)
	return nil
}

// ffmetadata renders markers in ffmpeg's FFMETADATA1 format with a
// millisecond timebase.
func ffmetadata(markers []chapter.Chapter) string {
	var b strings.Builder
	b.WriteString(";FFMETADATA1\n")
	for _, marker := range markers {
		b.WriteString("[CHAPTER]\n")
		b.WriteString("TIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", marker.Start.Milliseconds())
		fmt.Fprintf(&b, "END=%d\n", marker.End.Milliseconds())
		fmt.Fprintf(&b, "title=%s\n", escapeMetadataValue(marker.Title))
	}
	return b.String()
}

// escapeMetadataValue backslash-escapes the characters the ffmetadata parser
// treats specially.
func escapeMetadataValue(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"=", `\=`,
		";", `\;`,
		"#", `\#`,
		"\n", `\`+"\n",
	)
	return replacer.Replace(value)
}
