package util

import (
	"strings"
	"unicode"
)

var slugReplacements = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ä': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o", 'ö': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'ç': "c", 'ñ': "n",
}

// Slugify lowercases, strips accents common in Portuguese titles and collapses
// everything that is not [a-z0-9] into single hyphens.
func Slugify(input string) string {
	var b strings.Builder
	lastHyphen := true // avoid a leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if replacement, ok := slugReplacements[r]; ok {
			b.WriteString(replacement)
			lastHyphen = false
			continue
		}

		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}

		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
