// Package searchquery turns raw user input into a safe FTS5 match expression.
package searchquery

import "strings"

// Prepare normalizes a raw search string into an FTS5 expression where every
// word is quoted (so punctuation like C++ is literal, not query syntax) and
// the last word matches as a prefix, giving type-ahead behavior.
//
// An empty result means "no results", not "match everything"; callers must
// short-circuit rather than pass it to MATCH.
func Prepare(raw string) string {
	words := strings.Fields(strings.TrimSpace(raw))
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, len(words))
	for i, w := range words {
		quoted := `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
		if i == len(words)-1 {
			quoted += "*"
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " ")
}
