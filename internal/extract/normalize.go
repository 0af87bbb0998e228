package extract

import "strings"

// Normalize collapses every internal whitespace run (spaces, tabs, newlines)
// to a single space and trims the ends. Every pattern in this package runs
// on the normalized form so that anchors spanning original line breaks still
// match.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
