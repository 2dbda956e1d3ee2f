// Package latin turns written Latin into IPA transcripts for speech synthesis.
// Two rule sets are supported: reconstructed Classical and Italianate
// Ecclesiastical pronunciation.
package latin

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize cleans raw input text for transliteration and cache keying.
// It lower-cases, applies NFC so combining macrons merge into single code
// points, drops everything that is not a letter or whitespace, and collapses
// whitespace runs. Macron vowels (ā ē ī ō ū ȳ) are letters and survive.
//
// Normalize is total and idempotent: it never fails, and normalizing twice
// yields the same result as normalizing once.
func Normalize(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
