// Package fileutil resolves input paths for the pipeline: glob expansion,
// duplicate removal, and supported container format checks.
package fileutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"chaptersaw/internal/chapter"
)

// supportedFormats lists the container extensions the toolchain can cut and
// concatenate with stream copy.
var supportedFormats = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".avi":  {},
	".webm": {},
	".ts":   {},
	".m2ts": {},
}

// SupportedFormats returns the supported extensions in sorted order.
func SupportedFormats() []string {
	out := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IsSupportedFormat reports whether path has a supported container
// extension. The check is case-insensitive.
func IsSupportedFormat(path string) bool {
	_, ok := supportedFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ValidateFormat returns ErrUnsupportedFormat when path's extension is not a
// supported container format.
func ValidateFormat(path string) error {
	if IsSupportedFormat(path) {
		return nil
	}
	detail := fmt.Sprintf("%q (supported: %s)", filepath.Base(path), strings.Join(SupportedFormats(), ", "))
	return chapter.WrapErr(chapter.ErrUnsupportedFormat, "validate", detail, nil)
}

// ExpandGlobs resolves each pattern-or-path to concrete files. Glob results
// are sorted; literal paths pass through untouched so missing files surface
// as per-file scan errors rather than silently vanishing here. When
// filterSupported is set, unsupported extensions are dropped.
func ExpandGlobs(patterns []string, filterSupported bool) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !hasGlobMeta(pattern) {
			files = append(files, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, chapter.WrapErr(chapter.ErrConfiguration, "glob", pattern, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	if filterSupported {
		kept := files[:0]
		for _, f := range files {
			if IsSupportedFormat(f) {
				kept = append(kept, f)
			}
		}
		files = kept
	}
	return Dedupe(files), nil
}

// Dedupe removes duplicate paths while preserving first-seen order.
func Dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Stem returns the base filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
