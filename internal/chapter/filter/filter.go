// Package filter selects chapters by title keyword, regex pattern, or an
// arbitrary predicate. Filtering never reorders or duplicates chapters: the
// matched set is always a subsequence of the input.
package filter

import (
	"regexp"
	"strings"

	"chaptersaw/internal/chapter"
)

// Predicate is a caller-supplied test over a single chapter. It is the
// programmatic filter variant and is not exposed on the CLI.
type Predicate func(chapter.Chapter) bool

// Config describes one filter invocation. Keyword and Pattern are mutually
// exclusive; with neither set the filter matches every chapter.
type Config struct {
	Keyword       string
	Pattern       string
	CaseSensitive bool
	Exclude       bool
}

// Active reports whether the config narrows the chapter set at all.
func (c Config) Active() bool {
	return strings.TrimSpace(c.Keyword) != "" || strings.TrimSpace(c.Pattern) != ""
}

// Describe returns the keyword or pattern for user-facing messages.
func (c Config) Describe() string {
	if p := strings.TrimSpace(c.Pattern); p != "" {
		return p
	}
	return strings.TrimSpace(c.Keyword)
}

// Validate rejects configs that set both keyword and pattern, and compiles
// the pattern eagerly so bad regexes fail before the scan phase starts.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Keyword) != "" && strings.TrimSpace(c.Pattern) != "" {
		return chapter.WrapErr(chapter.ErrConfiguration, "filter", "keyword and pattern are mutually exclusive", nil)
	}
	if strings.TrimSpace(c.Pattern) != "" {
		if _, err := compile(c.Pattern, c.CaseSensitive); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs the configured filter and returns the matched chapters together
// with their indices into the input slice. The index list is strictly
// increasing, so it can seed a MatchPlan directly.
func Apply(chapters []chapter.Chapter, cfg Config) ([]chapter.Chapter, []int, error) {
	switch {
	case strings.TrimSpace(cfg.Pattern) != "":
		re, err := compile(cfg.Pattern, cfg.CaseSensitive)
		if err != nil {
			return nil, nil, err
		}
		matched, indices := partition(chapters, cfg.Exclude, func(ch chapter.Chapter) bool {
			return re.MatchString(ch.Title)
		})
		return matched, indices, nil
	case strings.TrimSpace(cfg.Keyword) != "":
		matched, indices := keywordMatch(chapters, cfg.Keyword, cfg.CaseSensitive, cfg.Exclude)
		return matched, indices, nil
	default:
		// No filter configured: every chapter matches.
		matched, indices := partition(chapters, cfg.Exclude, func(chapter.Chapter) bool { return true })
		return matched, indices, nil
	}
}

// ByKeyword keeps chapters whose titles contain keyword, case-insensitive
// unless caseSensitive is set. Exclude inverts the selection.
func ByKeyword(chapters []chapter.Chapter, keyword string, caseSensitive, exclude bool) []chapter.Chapter {
	matched, _ := keywordMatch(chapters, keyword, caseSensitive, exclude)
	return matched
}

// ByRegex keeps chapters whose titles match pattern. The pattern is searched
// (not anchored) against the title, mirroring regexp.MatchString semantics.
func ByRegex(chapters []chapter.Chapter, pattern string, caseSensitive, exclude bool) ([]chapter.Chapter, error) {
	re, err := compile(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}
	matched, _ := partition(chapters, exclude, func(ch chapter.Chapter) bool {
		return re.MatchString(ch.Title)
	})
	return matched, nil
}

// ByPredicate keeps chapters satisfying fn, preserving input order.
func ByPredicate(chapters []chapter.Chapter, fn Predicate) []chapter.Chapter {
	if fn == nil {
		return nil
	}
	matched, _ := partition(chapters, false, fn)
	return matched
}

func keywordMatch(chapters []chapter.Chapter, keyword string, caseSensitive, exclude bool) ([]chapter.Chapter, []int) {
	needle := keyword
	if !caseSensitive {
		needle = strings.ToLower(keyword)
	}
	return partition(chapters, exclude, func(ch chapter.Chapter) bool {
		title := ch.Title
		if !caseSensitive {
			title = strings.ToLower(title)
		}
		return strings.Contains(title, needle)
	})
}

func partition(chapters []chapter.Chapter, exclude bool, fn Predicate) ([]chapter.Chapter, []int) {
	matched := make([]chapter.Chapter, 0, len(chapters))
	indices := make([]int, 0, len(chapters))
	for i, ch := range chapters {
		if fn(ch) != exclude {
			matched = append(matched, ch)
			indices = append(indices, i)
		}
	}
	return matched, indices
}

func compile(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, chapter.WrapErr(chapter.ErrInvalidPattern, "compile", pattern, err)
	}
	return re, nil
}
