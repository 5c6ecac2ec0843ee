package chapter

import (
	"errors"
	"fmt"
	"strings"
)

// Err is the root of the chaptersaw error taxonomy. Every sentinel below
// wraps it, so errors.Is(err, chapter.Err) matches any package error.
var Err = errors.New("chaptersaw")

var (
	// ErrConfiguration covers bad option combinations caught before the
	// scan phase starts (both keyword and regex set, no inputs resolved).
	ErrConfiguration = fmt.Errorf("%w: configuration error", Err)
	// ErrToolNotFound reports a missing ffmpeg/ffprobe/mkvpropedit binary.
	ErrToolNotFound = fmt.Errorf("%w: tool not found", Err)
	// ErrUnsupportedFormat reports an input extension outside the
	// supported container set.
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", Err)
	// ErrFileNotFound reports an input path that does not resolve.
	ErrFileNotFound = fmt.Errorf("%w: file not found", Err)
	// ErrMissingChapterInfo reports a successful probe of a file that
	// carries no chapter data at all. Distinct from zero filter matches.
	ErrMissingChapterInfo = fmt.Errorf("%w: no chapter information", Err)
	// ErrNoChaptersMatched is the merge-mode batch failure raised when the
	// filter selects nothing across every input.
	ErrNoChaptersMatched = fmt.Errorf("%w: no chapters matched", Err)
	// ErrInvalidPattern reports a regex filter that does not compile.
	ErrInvalidPattern = fmt.Errorf("%w: invalid pattern", Err)
	// ErrTrackNotFound reports a set-default selection matching no track.
	ErrTrackNotFound = fmt.Errorf("%w: track not found", Err)
	// ErrUnsupportedOperation reports a container that cannot have its
	// default-track flags rewritten in place.
	ErrUnsupportedOperation = fmt.Errorf("%w: unsupported operation", Err)
	// ErrToolchain tags opaque failures surfaced from an external media
	// tool invocation.
	ErrToolchain = fmt.Errorf("%w: toolchain error", Err)
)

// WrapErr tags err with the given sentinel and an operation/file context so
// toolchain diagnostics stay actionable without verbose re-runs.
func WrapErr(marker error, operation, file string, err error) error {
	detail := buildDetail(operation, file)
	if marker == nil {
		marker = Err
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, file string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if file = strings.TrimSpace(file); file != "" {
		parts = append(parts, file)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
