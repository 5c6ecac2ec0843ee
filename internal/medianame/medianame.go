// Package medianame extracts structured metadata from release-style video
// filenames: show or movie title, season/episode numbers, year, resolution,
// source, codecs and release group. Parsing is token based and best effort;
// fields that cannot be recognized are left zero.
package medianame

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chaptersaw/internal/chapter"
)

// MediaInfo is the parsed result. Zero values mean "not detected".
type MediaInfo struct {
	Title        string
	Season       int
	Episode      int
	EpisodeCount int
	Year         int
	Source       string
	Resolution   string
	VideoCodec   string
	AudioCodec   string
	ReleaseGroup string
}

// IsEpisode reports whether an episode number was detected.
func (m MediaInfo) IsEpisode() bool {
	return m.Episode > 0
}

// IsSeasonPack reports whether the name covers more than one episode.
func (m MediaInfo) IsSeasonPack() bool {
	return m.EpisodeCount > 1
}

// EpisodeID formats the season/episode identifier, e.g. "S01E05" or
// "S01E01-E12" for a range. Empty when neither is known.
func (m MediaInfo) EpisodeID() string {
	var b strings.Builder
	if m.Season > 0 {
		fmt.Fprintf(&b, "S%02d", m.Season)
	}
	if m.Episode > 0 {
		fmt.Fprintf(&b, "E%02d", m.Episode)
		if m.EpisodeCount > 1 {
			fmt.Fprintf(&b, "-E%02d", m.Episode+m.EpisodeCount-1)
		}
	}
	return b.String()
}

func (m MediaInfo) String() string {
	parts := make([]string, 0, 3)
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	if id := m.EpisodeID(); id != "" {
		parts = append(parts, id)
	}
	if m.Year > 0 {
		parts = append(parts, fmt.Sprintf("(%d)", m.Year))
	}
	if len(parts) == 0 {
		return "(Unknown)"
	}
	return strings.Join(parts, " ")
}

var (
	groupPrefixRx = regexp.MustCompile(`^\[([^\]]+)\]\s*`)
	bracketRx     = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
	yearRx        = regexp.MustCompile(`(?:^|[\s._(\[-])((?:19|20)\d{2})(?:[\s._)\]-]|$)`)
	resolutionRx  = regexp.MustCompile(`(?i)(?:^|[\s._\[-])(\d{3,4}[pi]|4k)(?:[\s._\]-]|$)`)

	seasonEpisodeRx = regexp.MustCompile(`(?i)(?:^|[\s._-])S(\d{1,2})[\s._-]?E(\d{1,3})(?:\s*-?\s*E(\d{1,3}))?`)
	crossEpisodeRx  = regexp.MustCompile(`(?i)(?:^|[\s._-])(\d{1,2})x(\d{1,3})`)
	rangeEpisodeRx  = regexp.MustCompile(`(?:^|[\s._-])(\d{1,3})\s*-\s*(\d{1,3})(?:[\s._-]|$)`)
	bareEpisodeRx   = regexp.MustCompile(`\s-\s(\d{1,3})(?:[\s._-]|$)`)

	groupSuffixRx = regexp.MustCompile(`-([A-Za-z0-9]+)$`)
)

var sourceTokens = map[string]string{
	"bluray": "BluRay", "blu-ray": "BluRay", "bdrip": "BluRay", "brrip": "BluRay",
	"remux": "BluRay", "bdremux": "BluRay",
	"web-dl": "WEB-DL", "webdl": "WEB-DL", "webrip": "WEBRip", "web": "WEB",
	"hdtv": "HDTV", "dvdrip": "DVD", "dvd": "DVD",
}

var videoCodecTokens = map[string]string{
	"x264": "H.264", "h264": "H.264", "h.264": "H.264", "avc": "H.264",
	"x265": "H.265", "h265": "H.265", "h.265": "H.265", "hevc": "H.265",
	"xvid": "Xvid", "av1": "AV1", "vp9": "VP9",
}

var audioCodecTokens = map[string]string{
	"aac": "AAC", "ac3": "AC3", "eac3": "EAC3", "dts": "DTS",
	"truehd": "TrueHD", "flac": "FLAC", "opus": "Opus", "mp3": "MP3",
}

// knownTokens rejects metadata words as release-group candidates; "dl" and
// "ray" cover the halves of hyphenated source names.
var knownTokens = func() map[string]bool {
	set := map[string]bool{"dl": true, "ray": true, "10bit": true, "8bit": true}
	for t := range sourceTokens {
		set[t] = true
	}
	for t := range videoCodecTokens {
		set[t] = true
	}
	for t := range audioCodecTokens {
		set[t] = true
	}
	return set
}()

var titleCaser = cases.Title(language.English, cases.NoLower)

// Parse extracts media metadata from a filename or path. Only the base name
// is considered.
func Parse(filename string) MediaInfo {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var info MediaInfo

	if m := groupPrefixRx.FindStringSubmatch(base); m != nil {
		info.ReleaseGroup = m[1]
		base = base[len(m[0]):]
	} else if m := groupSuffixRx.FindStringSubmatch(base); m != nil {
		candidate := m[1]
		lower := strings.ToLower(candidate)
		if !knownTokens[lower] && !allDigits(candidate) && resolutionRx.FindString(candidate) == "" {
			info.ReleaseGroup = candidate
			base = base[:len(base)-len(m[0])]
		}
	}

	if m := resolutionRx.FindStringSubmatch(base); m != nil {
		info.Resolution = strings.ToLower(m[1])
	}
	if m := yearRx.FindStringSubmatch(base); m != nil {
		info.Year, _ = strconv.Atoi(m[1])
	}
	for token, label := range sourceTokens {
		if containsToken(base, token) {
			// Prefer the more specific label when several tokens appear,
			// e.g. WEB-DL over WEB.
			if info.Source == "" || len(token) > 3 {
				info.Source = label
			}
		}
	}
	for token, label := range videoCodecTokens {
		if containsToken(base, token) {
			info.VideoCodec = label
			break
		}
	}
	for token, label := range audioCodecTokens {
		if containsToken(base, token) {
			info.AudioCodec = label
			break
		}
	}

	cleaned := bracketRx.ReplaceAllString(base, " ")
	titleEnd := len(cleaned)

	if m := seasonEpisodeRx.FindStringSubmatchIndex(cleaned); m != nil {
		info.Season = atoiRange(cleaned, m, 1)
		info.Episode = atoiRange(cleaned, m, 2)
		info.EpisodeCount = 1
		if m[6] >= 0 {
			if last := atoiRange(cleaned, m, 3); last >= info.Episode {
				info.EpisodeCount = last - info.Episode + 1
			}
		}
		titleEnd = m[0]
	} else if m := crossEpisodeRx.FindStringSubmatchIndex(cleaned); m != nil {
		info.Season = atoiRange(cleaned, m, 1)
		info.Episode = atoiRange(cleaned, m, 2)
		info.EpisodeCount = 1
		titleEnd = m[0]
	} else if m := rangeEpisodeRx.FindStringSubmatchIndex(cleaned); m != nil {
		first := atoiRange(cleaned, m, 1)
		last := atoiRange(cleaned, m, 2)
		if last >= first && first > 0 {
			info.Episode = first
			info.EpisodeCount = last - first + 1
			titleEnd = m[0]
		}
	} else if m := bareEpisodeRx.FindStringSubmatchIndex(cleaned); m != nil {
		info.Episode = atoiRange(cleaned, m, 1)
		info.EpisodeCount = 1
		titleEnd = m[0]
	}

	info.Title = cleanTitle(cleaned[:titleEnd], info)
	return info
}

// ParseEpisodeRange parses "1-12" into (1, 12) or a bare count "5" into
// (1, 5).
func ParseEpisodeRange(rangeStr string) (int, int, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	if first, last, found := strings.Cut(rangeStr, "-"); found {
		start, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return 0, 0, chapter.WrapErr(chapter.ErrConfiguration, "parse episode range", "", fmt.Errorf("invalid range %q", rangeStr))
		}
		end, err := strconv.Atoi(strings.TrimSpace(last))
		if err != nil || end < start {
			return 0, 0, chapter.WrapErr(chapter.ErrConfiguration, "parse episode range", "", fmt.Errorf("invalid range %q", rangeStr))
		}
		return start, end - start + 1, nil
	}
	count, err := strconv.Atoi(rangeStr)
	if err != nil || count < 1 {
		return 0, 0, chapter.WrapErr(chapter.ErrConfiguration, "parse episode range", "", fmt.Errorf("invalid range %q", rangeStr))
	}
	return 1, count, nil
}

// cleanTitle strips delimiters and metadata tokens from the title portion
// and restores word capitalization on all-lowercase scene names.
func cleanTitle(raw string, info MediaInfo) string {
	raw = strings.NewReplacer(".", " ", "_", " ").Replace(raw)
	fields := strings.Fields(raw)
	var kept []string
	for _, f := range fields {
		lower := strings.ToLower(f)
		trimmed := strings.Trim(f, "-")
		if trimmed == "" || knownTokens[lower] {
			continue
		}
		if info.Year > 0 && f == strconv.Itoa(info.Year) {
			continue
		}
		if lower == info.Resolution {
			continue
		}
		if f == strings.ToLower(f) {
			f = titleCaser.String(f)
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func containsToken(name, token string) bool {
	lower := strings.ToLower(name)
	idx := 0
	for {
		pos := strings.Index(lower[idx:], token)
		if pos < 0 {
			return false
		}
		pos += idx
		before := pos == 0 || isDelimiter(lower[pos-1])
		afterIdx := pos + len(token)
		after := afterIdx == len(lower) || isDelimiter(lower[afterIdx])
		if before && after {
			return true
		}
		idx = pos + 1
	}
}

func isDelimiter(b byte) bool {
	switch b {
	case ' ', '.', '_', '-', '[', ']', '(', ')':
		return true
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func atoiRange(s string, m []int, group int) int {
	n, _ := strconv.Atoi(s[m[2*group]:m[2*group+1]])
	return n
}
