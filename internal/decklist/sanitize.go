package decklist

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize converts a card identity field into its filename form: Unicode is
// normalized (card names carry typographic apostrophes and combining marks in
// some locales) and whitespace runs collapse to single underscores.
func Sanitize(field string) string {
	normalized := norm.NFC.String(strings.TrimSpace(field))
	normalized = strings.ReplaceAll(normalized, "’", "'")

	var b strings.Builder
	b.Grow(len(normalized))
	inSpace := false
	for _, r := range normalized {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
