package boomer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize turns free text into the key triggers are matched on: lowercase,
// accents removed, and every run of letters and digits concatenated with
// separators dropped. "Bei tempi!" and "beitempi" share the key "beitempi".
func Normalize(text string) string {
	text = strings.ToLower(text)

	// transformers keep state between calls, so build one per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if plain, _, err := transform.String(stripMarks, text); err == nil {
		text = plain
	}

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	// compose only after joining: letters brought together by dropping a
	// separator (Hangul jamo) must compose the same way on every pass
	return norm.NFC.String(strings.Join(words, ""))
}
