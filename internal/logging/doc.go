// Package logging builds the slog loggers used across chaptersaw.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Components attach a standard
// "component" attribute via NewComponentLogger so console lines read as
// "component: message". Tests use NewNop.
package logging
