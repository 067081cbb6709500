// Package heuristics holds the deterministic classification and fallback
// extraction rules applied to raw travel document text. Every function is pure
// and safe for concurrent use.
package heuristics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lower-cases s and strips diacritics so keyword tables can stay ASCII.
// A transformer is stateful, so each call builds its own chain.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// haystack joins text and file name the way every keyword rule consumes them.
func haystack(text, fileName string) string {
	if fileName == "" {
		return text
	}
	return text + "\n" + fileName
}

// CleanToken trims surrounding punctuation and collapses inner whitespace.
func CleanToken(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
