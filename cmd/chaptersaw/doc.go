// Command chaptersaw filters, extracts and recombines chapters across video
// files. It scans inputs with ffprobe, selects chapters by keyword or regex,
// and uses ffmpeg to produce either one merged output or one filtered file
// per input.
package main
