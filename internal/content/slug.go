package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a title has no usable characters.
const FallbackSlug = "article"

var symbolWords = map[rune]string{
	'&': "and",
	'%': "percent",
	'$': "dollar",
	'<': "less",
	'>': "greater",
	'|': "or",
	'+': "plus",
	'@': "at",
}

// Slugify derives a URL-safe slug from a title: accents are transliterated,
// a few symbols become words, hyphens act as separators and every other
// non-alphanumeric character is dropped.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range folded {
		if w, ok := symbolWords[r]; ok {
			b.WriteString(w)
			continue
		}
		switch {
		case r == '-' || unicode.IsSpace(r):
			b.WriteByte(' ')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}
