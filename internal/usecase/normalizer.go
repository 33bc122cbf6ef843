package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled patterns and tables; immutable after init.
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

	// accentStripper drops combining marks after canonical decomposition,
	// so "crème fraîche" compares equal to "creme fraiche".
	accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// stopwords are Dutch function words and unit filler that carry no matching
// signal. "x" also covers multipack notation like "2x melk".
var stopwords = map[string]bool{
	"de": true, "het": true, "een": true, "en": true, "van": true,
	"voor": true, "met": true, "zonder": true, "per": true,
	"stuk": true, "stuks": true, "x": true,
}

func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeText canonicalizes free text for comparison: lower-cased, accents
// stripped, every run of non-alphanumerics folded to a single space, trimmed.
// Empty input yields an empty string, never an error.
func normalizeText(s string) string {
	text := stripAccents(strings.ToLower(s))
	text = nonAlphanumericRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokenize splits the canonical string into tokens with stopwords removed.
func tokenize(s string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalizeText(s)) {
		if stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// tokenSet collects tokens into a set for overlap math.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(s) {
		set[tok] = true
	}
	return set
}
