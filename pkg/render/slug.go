package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Slug converts heading text into an anchor id: accents are stripped, letters
// lower-cased and every run of other characters collapsed into a single dash.
func Slug(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	dash := false
	for _, r := range lower.String(decomposed) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
