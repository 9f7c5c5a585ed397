package ident

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MinDigitRun is the minimum length of a digit sequence accepted as an ALMA
// identifier. Institutional ALMA IDs are long (typically 18 digits); runs
// shorter than this are treated as noise.
const MinDigitRun = 8

// almaRE matches an ALMA-style digit sequence embedded in arbitrary text.
var almaRE = regexp.MustCompile(`[0-9]{8,}`)

// stripMarks removes Unicode format characters: right-to-left and
// left-to-right marks, byte-order marks, and similar invisible characters
// that survive copy/paste from catalog records.
var stripMarks = transform.Chain(runes.Remove(runes.In(unicode.Cf)))

// Clean applies the cleanup steps shared by every identifier source: drop a
// leading spreadsheet force-text apostrophe, remove embedded whitespace and
// tabs, remove directional marks and BOMs, and trim the result.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "'") {
		s = strings.TrimSpace(s[1:])
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	if cleaned, _, err := transform.String(stripMarks, s); err == nil {
		s = cleaned
	}
	return strings.TrimSpace(s)
}

// Normalize extracts the canonical ALMA identifier from raw text.
//
// The input is cleaned via Clean, then the first maximal run of at least
// MinDigitRun consecutive digits is taken as the identifier. The boolean is
// false when no such run exists; callers treat that as "absent", never as an
// error. Leading zeros are preserved: identifiers are catalog numbers, not
// arithmetic values.
func Normalize(raw string) (string, bool) {
	s := Clean(raw)
	if s == "" {
		return "", false
	}
	m := almaRE.FindString(s)
	if m == "" {
		return "", false
	}
	return m, true
}

// ExtractAll returns every ALMA identifier embedded in raw text, in order of
// appearance. A messy line may carry several identifiers.
func ExtractAll(raw string) []string {
	s := Clean(raw)
	if s == "" {
		return nil
	}
	return almaRE.FindAllString(s, -1)
}
