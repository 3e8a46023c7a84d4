// Package title provides normalization and fuzzy matching for movie titles.
package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var punctReplacer = strings.NewReplacer(
	"&", " and ",
	"-", " ",
	".", " ",
	":", " ",
	",", " ",
	"(", " ",
	")", " ",
	"'", "",
)

// Clean normalizes a title for comparison purposes.
// Lowercases, strips accents, folds punctuation to spaces, removes a
// leading article, and collapses whitespace.
func Clean(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)
	s = punctReplacer.Replace(s)
	s = stripLeadingArticle(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripLeadingArticle(s string) string {
	s = strings.TrimSpace(s)
	for _, article := range []string{"the ", "an ", "a "} {
		if rest, ok := strings.CutPrefix(s, article); ok {
			return rest
		}
	}
	return s
}

// removeAccents strips diacritical marks (e.g., "Léon" -> "Leon").
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
