// Package deps discovers the external binaries chaptersaw shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"chaptersaw/internal/chapter"
)

// Requirement defines an external dependency chaptersaw relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the dependency set for the given tool paths.
// mkvpropedit is optional; only `set-default` needs it.
func Requirements(ffmpeg, ffprobe, mkvpropedit string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "segment extraction and concatenation"},
		{Name: "FFprobe", Command: ffprobe, Description: "chapter and track probing"},
		{Name: "mkvpropedit", Command: mkvpropedit, Description: "in-place default-track edits", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify returns ErrToolNotFound when any required binary is missing.
func Verify(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if status.Optional || status.Available {
			continue
		}
		detail := fmt.Sprintf("%s (%s): %s; install it or point tools.%s at the executable",
			status.Name, status.Command, status.Detail, strings.ToLower(status.Name))
		return chapter.WrapErr(chapter.ErrToolNotFound, "verify dependencies", detail, nil)
	}
	return nil
}
