// Package search holds the outbound query normalization shared by the media
// provider adapters. Normalized strings are used only for provider queries;
// cache keys stay addressed by the raw title/artist pair.
package search

import "strings"

// Normalize cleans a title or artist for an outbound provider query:
// parenthetical and bracketed annotations are stripped, non-alphanumeric
// noise removed, case lowered, whitespace collapsed. Deterministic and
// stable across calls.
func Normalize(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	stripped := stripAnnotations(input)
	cleaned := cleanSeparators(strings.ToLower(stripped))

	return strings.Join(strings.Fields(cleaned), " ")
}

// QueryTerm normalizes input, falling back to the raw trimmed value when
// normalization eats everything (e.g. a title that is all punctuation).
func QueryTerm(input string) string {
	if normalized := Normalize(input); normalized != "" {
		return normalized
	}
	return strings.TrimSpace(input)
}

// stripAnnotations drops every (...) and [...] segment. Unbalanced openers
// drop the remainder of the string, which matches how annotations appear in
// real track titles.
func stripAnnotations(input string) string {
	var b strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func cleanSeparators(input string) string {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'':
			// dropped without a separator so "don't" collapses to one term
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
