package main

import (
	"fmt"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/chapter/filter"
	"chaptersaw/internal/fileutil"
)

// resolveInputs expands the repeated --input values. Globs are expanded and
// filtered to supported container formats; literal paths pass through so a
// bad extension is still reported per file during scanning.
func resolveInputs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, chapter.WrapErr(chapter.ErrConfiguration, "resolve inputs", "", fmt.Errorf("no input files given"))
	}
	files, err := fileutil.ExpandGlobs(patterns, true)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, chapter.WrapErr(chapter.ErrConfiguration, "resolve inputs", "", fmt.Errorf("no files matched the given inputs"))
	}
	return files, nil
}

// filterFlags is the shared keyword/regex flag set for commands that select
// chapters.
type filterFlags struct {
	keyword       string
	pattern       string
	caseSensitive bool
	exclude       bool
}

func (f filterFlags) config() filter.Config {
	return filter.Config{
		Keyword:       f.keyword,
		Pattern:       f.pattern,
		CaseSensitive: f.caseSensitive,
		Exclude:       f.exclude,
	}
}
