package toolchain

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/language"
	"chaptersaw/internal/logging"
)

// probeChaptersPayload mirrors the ffprobe -show_chapters JSON document.
type probeChaptersPayload struct {
	Chapters []probeChapter `json:"chapters"`
}

type probeChapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// probeStreamsPayload mirrors the ffprobe -show_streams JSON document.
type probeStreamsPayload struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Channels    int               `json:"channels"`
	SampleRate  string            `json:"sample_rate"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// ProbeChapters executes ffprobe against file and decodes its chapter list.
func (r *Runner) ProbeChapters(ctx context.Context, file string) ([]chapter.Chapter, error) {
	output, err := r.runProbe(ctx, file, "-show_chapters")
	if err != nil {
		return nil, chapter.WrapErr(chapter.ErrToolchain, "probe chapters", file, err)
	}

	var payload probeChaptersPayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, chapter.WrapErr(chapter.ErrToolchain, "parse chapter data", file, err)
	}
	if len(payload.Chapters) == 0 {
		return nil, chapter.WrapErr(chapter.ErrMissingChapterInfo, "probe chapters", file, nil)
	}

	chapters := make([]chapter.Chapter, 0, len(payload.Chapters))
	for idx, raw := range payload.Chapters {
		title := strings.TrimSpace(raw.Tags["title"])
		if title == "" {
			title = fmt.Sprintf("Chapter %d", idx+1)
		}
		start, err := parseSeconds(raw.StartTime)
		if err != nil {
			return nil, chapter.WrapErr(chapter.ErrToolchain, "parse chapter start", file, err)
		}
		end, err := parseSeconds(raw.EndTime)
		if err != nil {
			return nil, chapter.WrapErr(chapter.ErrToolchain, "parse chapter end", file, err)
		}
		chapters = append(chapters, chapter.Chapter{
			Title: title,
			Start: start,
			End:   end,
			Index: idx,
		})
	}

	r.logger.Debug("probed chapters",
		logging.String("file", file),
		logging.Int("count", len(chapters)),
	)
	return chapters, nil
}

// ProbeTracks executes ffprobe against file and decodes its stream list.
func (r *Runner) ProbeTracks(ctx context.Context, file string) ([]chapter.Track, error) {
	output, err := r.runProbe(ctx, file, "-show_streams")
	if err != nil {
		return nil, chapter.WrapErr(chapter.ErrToolchain, "probe tracks", file, err)
	}

	var payload probeStreamsPayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, chapter.WrapErr(chapter.ErrToolchain, "parse track data", file, err)
	}

	tracks := make([]chapter.Track, 0, len(payload.Streams))
	for _, stream := range payload.Streams {
		tracks = append(tracks, trackFromStream(stream))
	}
	r.logger.Debug("probed tracks",
		logging.String("file", file),
		logging.Int("count", len(tracks)),
	)
	return tracks, nil
}

func (r *Runner) runProbe(ctx context.Context, file string, selector string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.ffprobe,
		"-v", "error",
		"-hide_banner",
		selector,
		"-of", "json",
		"--", file,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

func trackFromStream(stream probeStream) chapter.Track {
	track := chapter.Track{
		ID:       stream.Index,
		Type:     trackType(stream.CodecType),
		Codec:    stream.CodecName,
		Width:    stream.Width,
		Height:   stream.Height,
		Channels: stream.Channels,
	}
	if rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate)); err == nil {
		track.SampleRate = rate
	}
	if stream.Tags != nil {
		track.Language = language.ExtractFromTags(stream.Tags)
		track.Name = strings.TrimSpace(stream.Tags["title"])
	}
	if stream.Disposition != nil {
		track.Default = stream.Disposition["default"] != 0
		track.Forced = stream.Disposition["forced"] != 0
	}
	return track
}

func trackType(codecType string) chapter.TrackType {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return chapter.TrackTypeVideo
	case "audio":
		return chapter.TrackTypeAudio
	case "subtitle":
		return chapter.TrackTypeSubtitle
	default:
		return chapter.TrackTypeUnknown
	}
}

func parseSeconds(value string) (time.Duration, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	seconds, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: %w", value, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
