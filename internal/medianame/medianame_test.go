package medianame_test

import (
	"errors"
	"testing"

	"chaptersaw/internal/chapter"
	"chaptersaw/internal/medianame"
)

func TestParseSceneEpisode(t *testing.T) {
	info := medianame.Parse("Show.Name.S01E05.720p.BluRay.x264-GROUP.mkv")
	if info.Title != "Show Name" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Season != 1 || info.Episode != 5 || info.EpisodeCount != 1 {
		t.Fatalf("episode info = S%d E%d count %d", info.Season, info.Episode, info.EpisodeCount)
	}
	if info.Resolution != "720p" || info.Source != "BluRay" {
		t.Fatalf("resolution %q source %q", info.Resolution, info.Source)
	}
	if info.VideoCodec != "H.264" {
		t.Fatalf("video codec = %q", info.VideoCodec)
	}
	if info.ReleaseGroup != "GROUP" {
		t.Fatalf("release group = %q", info.ReleaseGroup)
	}
	if !info.IsEpisode() || info.IsSeasonPack() {
		t.Fatalf("flags wrong: %+v", info)
	}
	if info.EpisodeID() != "S01E05" {
		t.Fatalf("episode id = %q", info.EpisodeID())
	}
}

func TestParseAnimeBatch(t *testing.T) {
	info := medianame.Parse("[Subs] Anime - 01-12 [1080p].mkv")
	if info.Title != "Anime" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Episode != 1 || info.EpisodeCount != 12 {
		t.Fatalf("episode %d count %d", info.Episode, info.EpisodeCount)
	}
	if info.Resolution != "1080p" {
		t.Fatalf("resolution = %q", info.Resolution)
	}
	if info.ReleaseGroup != "Subs" {
		t.Fatalf("release group = %q", info.ReleaseGroup)
	}
	if !info.IsSeasonPack() {
		t.Fatal("expected season pack")
	}
}

func TestParseMovie(t *testing.T) {
	info := medianame.Parse("/library/Movie.Title.2019.2160p.WEB-DL.HEVC.AAC.mkv")
	if info.Title != "Movie Title" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Year != 2019 {
		t.Fatalf("year = %d", info.Year)
	}
	if info.Source != "WEB-DL" {
		t.Fatalf("source = %q", info.Source)
	}
	if info.VideoCodec != "H.265" || info.AudioCodec != "AAC" {
		t.Fatalf("codecs = %q / %q", info.VideoCodec, info.AudioCodec)
	}
	if info.IsEpisode() {
		t.Fatal("movie misdetected as episode")
	}
}

func TestParseEpisodeRangeSuffix(t *testing.T) {
	info := medianame.Parse("My Show - S02E01-E04 - Arc.mkv")
	if info.Season != 2 || info.Episode != 1 || info.EpisodeCount != 4 {
		t.Fatalf("episode info = S%d E%d count %d", info.Season, info.Episode, info.EpisodeCount)
	}
	if info.EpisodeID() != "S02E01-E04" {
		t.Fatalf("episode id = %q", info.EpisodeID())
	}
}

func TestParseCrossNotation(t *testing.T) {
	info := medianame.Parse("show.name.3x07.hdtv.mkv")
	if info.Title != "Show Name" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Season != 3 || info.Episode != 7 {
		t.Fatalf("episode info = S%d E%d", info.Season, info.Episode)
	}
	if info.Source != "HDTV" {
		t.Fatalf("source = %q", info.Source)
	}
}

func TestStringFormatting(t *testing.T) {
	info := medianame.Parse("Show.Name.S01E05.mkv")
	if got := info.String(); got != "Show Name S01E05" {
		t.Fatalf("String = %q", got)
	}
	if got := (medianame.MediaInfo{}).String(); got != "(Unknown)" {
		t.Fatalf("empty String = %q", got)
	}
}

func TestParseEpisodeRange(t *testing.T) {
	start, count, err := medianame.ParseEpisodeRange("1-12")
	if err != nil || start != 1 || count != 12 {
		t.Fatalf("ParseEpisodeRange(1-12) = %d, %d, %v", start, count, err)
	}
	start, count, err = medianame.ParseEpisodeRange("5")
	if err != nil || start != 1 || count != 5 {
		t.Fatalf("ParseEpisodeRange(5) = %d, %d, %v", start, count, err)
	}
	for _, bad := range []string{"", "abc", "5-2", "1-2-3", "0"} {
		if _, _, err := medianame.ParseEpisodeRange(bad); !errors.Is(err, chapter.ErrConfiguration) {
			t.Fatalf("ParseEpisodeRange(%q) err = %v, want ErrConfiguration", bad, err)
		}
	}
}
