// Package tracks lists a file's streams and rewrites default-track flags.
// A set-default request can name an audio language, a subtitle language, or
// an explicit track id; the audio and subtitle selections are independent
// attempts, so one failing never blocks the other.
package tracks

import (
	"context"
	"fmt"
	"log/slog"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/language"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/toolchain"
)

// Manager performs track operations through the media toolchain.
type Manager struct {
	tc     toolchain.Toolchain
	logger *slog.Logger
}

// NewManager constructs a Manager.
func NewManager(tc toolchain.Toolchain, logger *slog.Logger) *Manager {
	return &Manager{
		tc:     tc,
		logger: logging.NewComponentLogger(logger, "tracks"),
	}
}

// List returns the file's tracks in ffprobe stream order.
func (m *Manager) List(ctx context.Context, file string) ([]chapter.Track, error) {
	return m.tc.ProbeTracks(ctx, file)
}

// SetDefaultRequest selects which tracks become default. TrackID below zero
// means "not requested"; it is mutually exclusive with the language fields.
type SetDefaultRequest struct {
	AudioLanguage    string
	SubtitleLanguage string
	TrackID          int
}

func (r SetDefaultRequest) validate() error {
	byID := r.TrackID >= 0
	byLanguage := r.AudioLanguage != "" || r.SubtitleLanguage != ""
	if byID && byLanguage {
		return chapter.WrapErr(chapter.ErrConfiguration, "set default", "", fmt.Errorf("track id and language selection are mutually exclusive"))
	}
	if !byID && !byLanguage {
		return chapter.WrapErr(chapter.ErrConfiguration, "set default", "", fmt.Errorf("nothing selected"))
	}
	return nil
}

// Attempt reports one selection's outcome. Track is set when a matching
// track was found, even if flag rewriting then failed.
type Attempt struct {
	Kind     chapter.TrackType
	Selector string
	Track    *chapter.Track
	Err      error
}

// SetDefaults probes the file once and applies every requested selection.
// Per-selection failures land in the returned attempts; only probing or an
// invalid request fails the whole call.
func (m *Manager) SetDefaults(ctx context.Context, file string, req SetDefaultRequest) ([]Attempt, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	all, err := m.tc.ProbeTracks(ctx, file)
	if err != nil {
		return nil, err
	}

	if req.TrackID >= 0 {
		attempt := m.setByID(ctx, file, all, req.TrackID)
		return []Attempt{attempt}, nil
	}

	var attempts []Attempt
	if req.AudioLanguage != "" {
		attempts = append(attempts, m.setByLanguage(ctx, file, all, chapter.TrackTypeAudio, req.AudioLanguage))
	}
	if req.SubtitleLanguage != "" {
		attempts = append(attempts, m.setByLanguage(ctx, file, all, chapter.TrackTypeSubtitle, req.SubtitleLanguage))
	}
	return attempts, nil
}

func (m *Manager) setByID(ctx context.Context, file string, all []chapter.Track, trackID int) Attempt {
	attempt := Attempt{Selector: fmt.Sprintf("track %d", trackID)}
	for i := range all {
		if all[i].ID == trackID {
			attempt.Kind = all[i].Type
			attempt.Track = &all[i]
			attempt.Err = m.promote(ctx, file, all, all[i])
			return attempt
		}
	}
	attempt.Err = chapter.WrapErr(chapter.ErrTrackNotFound, "set default", file, fmt.Errorf("no track with id %d", trackID))
	return attempt
}

func (m *Manager) setByLanguage(ctx context.Context, file string, all []chapter.Track, kind chapter.TrackType, lang string) Attempt {
	attempt := Attempt{Kind: kind, Selector: fmt.Sprintf("%s %s", kind, lang)}
	for i := range all {
		if all[i].Type != kind || !language.Matches(all[i].Language, lang) {
			continue
		}
		attempt.Track = &all[i]
		attempt.Err = m.promote(ctx, file, all, all[i])
		return attempt
	}
	attempt.Err = chapter.WrapErr(chapter.ErrTrackNotFound, "set default", file,
		fmt.Errorf("no %s track in language %q", kind, lang))
	return attempt
}

// promote makes target the sole default of its type: the flag is set on the
// target and cleared on any sibling that currently carries it.
func (m *Manager) promote(ctx context.Context, file string, all []chapter.Track, target chapter.Track) error {
	if err := m.tc.SetDefaultFlag(ctx, file, target.ID, true); err != nil {
		return err
	}
	for _, other := range all {
		if other.ID == target.ID || other.Type != target.Type || !other.Default {
			continue
		}
		if err := m.tc.SetDefaultFlag(ctx, file, other.ID, false); err != nil {
			return err
		}
	}
	m.logger.Info("default track set",
		logging.String("file", file),
		logging.Int("track", target.ID),
		logging.String("type", string(target.Type)),
		logging.String("language", target.Language),
	)
	return nil
}

// AllSucceeded reports whether every attempt applied cleanly.
func AllSucceeded(attempts []Attempt) bool {
	for _, a := range attempts {
		if a.Err != nil {
			return false
		}
	}
	return true
}
