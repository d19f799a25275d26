// internal/app/system/slug/slug.go
//
// Package slug derives URL-safe identifiers from display titles.
//
// A slug is lowercase ASCII letters and digits in runs joined by single
// hyphens, with no leading or trailing hyphen. Diacritics are folded
// ("Café" -> "cafe"), letters that do not decompose are transliterated
// ("Łódź" -> "lodz", "Straße" -> "strasse"), and anything else with no
// ASCII form is dropped.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// words substituted for symbols before separators are collapsed.
var symbolWords = map[rune]string{
	'&': "and",
	'%': "percent",
	'$': "dollar",
	'@': "at",
}

// letterWords spells letters that NFD leaves whole.
var letterWords = map[rune]string{
	'ß': "ss", 'ẞ': "ss",
	'ł': "l", 'Ł': "l",
	'ø': "o", 'Ø': "o",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'đ': "d", 'Đ': "d",
	'ð': "d", 'Ð': "d",
	'þ': "th", 'Þ': "th",
	'ħ': "h", 'Ħ': "h",
	'ı': "i",
}

// Make returns the slug for title. It is pure: the same title always
// yields the same slug. An empty result means title had nothing usable.
func Make(title string) string {
	// transform.Chain keeps state, so a fresh chain per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	sep := false
	write := func(s string) {
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteString(s)
	}

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			write(string(r))
		case r >= 'A' && r <= 'Z':
			write(string(unicode.ToLower(r)))
		case r == '\'' || r == '’':
			// apostrophes join: "Client's" -> "clients"
		default:
			if w, ok := letterWords[r]; ok {
				write(w)
				continue
			}
			if w, ok := symbolWords[r]; ok {
				sep = true
				write(w)
				sep = true
				continue
			}
			if r < unicode.MaxASCII || unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
				sep = true
			}
		}
	}
	return b.String()
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
