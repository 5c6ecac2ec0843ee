// Package language normalizes track language codes for selection and
// display. ffprobe reports whatever the muxer stored: ISO 639-1 ("en"),
// ISO 639-2 in either variant ("fre"/"fra"), or a full word ("english").
// Track selection must treat all of these as the same language.
package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2 string // ISO 639-1
	code3 string // ISO 639-2/T
	alt3  string // ISO 639-2/B variant where it differs
	word  string
}

var table = []entry{
	{"en", "eng", "", "english"},
	{"es", "spa", "", "spanish"},
	{"fr", "fra", "fre", "french"},
	{"de", "deu", "ger", "german"},
	{"it", "ita", "", "italian"},
	{"pt", "por", "", "portuguese"},
	{"ja", "jpn", "", "japanese"},
	{"ko", "kor", "", "korean"},
	{"zh", "zho", "chi", "chinese"},
	{"ru", "rus", "", "russian"},
	{"ar", "ara", "", "arabic"},
	{"hi", "hin", "", "hindi"},
	{"nl", "nld", "dut", "dutch"},
	{"pl", "pol", "", "polish"},
	{"sv", "swe", "", "swedish"},
	{"da", "dan", "", "danish"},
	{"no", "nor", "", "norwegian"},
	{"fi", "fin", "", "finnish"},
	{"cs", "ces", "cze", "czech"},
	{"el", "ell", "gre", "greek"},
	{"he", "heb", "", "hebrew"},
	{"th", "tha", "", "thai"},
	{"tr", "tur", "", "turkish"},
	{"uk", "ukr", "", "ukrainian"},
	{"vi", "vie", "", "vietnamese"},
	{"hu", "hun", "", "hungarian"},
	{"ro", "ron", "rum", "romanian"},
}

var byAlias = func() map[string]*entry {
	m := make(map[string]*entry, len(table)*4)
	for i := range table {
		e := &table[i]
		m[e.code2] = e
		m[e.code3] = e
		if e.alt3 != "" {
			m[e.alt3] = e
		}
		m[e.word] = e
	}
	return m
}()

// Canonical reduces any recognized spelling of a language to its ISO 639-2/T
// code. Unrecognized input is lowercased and passed through so two tracks
// tagged with the same unknown code still compare equal.
func Canonical(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return ""
	}
	if e, ok := byAlias[code]; ok {
		return e.code3
	}
	return code
}

// Matches reports whether a track's language tag and a user-requested
// language refer to the same language. An empty request matches nothing;
// an untagged track matches nothing.
func Matches(trackLanguage, requested string) bool {
	track := Canonical(trackLanguage)
	want := Canonical(requested)
	return track != "" && track == want
}

// DisplayName returns a human-readable name for a language tag, falling
// back to the uppercased raw code when the tag is unrecognized.
func DisplayName(code string) string {
	canonical := Canonical(code)
	if canonical == "" {
		return "Unknown"
	}
	if tag, err := xlang.Parse(canonical); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(canonical)
}

// ExtractFromTags pulls the language out of a stream's metadata tags,
// trying the tag key spellings muxers actually produce.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, key := range []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"} {
		value := strings.TrimSpace(strings.ReplaceAll(tags[key], "\x00", ""))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
