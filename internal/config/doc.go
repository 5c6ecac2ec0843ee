// Package config loads, normalizes, and validates chaptersaw configuration.
//
// Configuration lives in a TOML file resolved from --config,
// ~/.config/chaptersaw/config.toml, or ./chaptersaw.toml in that order. A
// missing file is not an error; defaults apply. CLI flags override whatever
// the file provides.
package config
