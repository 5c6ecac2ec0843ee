package config

const (
	defaultStagingDir     = "~/.cache/chaptersaw/staging"
	defaultFFmpeg         = "ffmpeg"
	defaultFFprobe        = "ffprobe"
	defaultMkvPropEdit    = "mkvpropedit"
	defaultSeparateSuffix = "_filtered"
	defaultChapterFormat  = "{title}"
	defaultStaleRunHours  = 24
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:      defaultFFmpeg,
			FFprobe:     defaultFFprobe,
			MkvPropEdit: defaultMkvPropEdit,
		},
		Paths: Paths{
			StagingDir: defaultStagingDir,
		},
		Output: Output{
			SeparateSuffix: defaultSeparateSuffix,
			ChapterFormat:  defaultChapterFormat,
		},
		Execution: Execution{
			Workers:       0,
			StaleRunHours: defaultStaleRunHours,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
