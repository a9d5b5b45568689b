package search

import "strings"

// normalizeSpace collapses every run of whitespace to a single space and
// trims the ends. Models reflow line breaks inside otherwise verbatim
// quotes, so verification compares whitespace-normalized forms.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isVerbatim reports whether quote is a contiguous span of body, up to
// whitespace normalization.
func isVerbatim(body, quote string) bool {
	q := normalizeSpace(quote)
	if q == "" {
		return false
	}
	return strings.Contains(normalizeSpace(body), q)
}
