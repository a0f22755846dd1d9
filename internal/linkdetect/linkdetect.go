// Package linkdetect decides whether free text contains URLs and extracts them.
package linkdetect

import (
	"regexp"
	"strings"
)

var urlRe = regexp.MustCompile(`https?://\S+`)

// trailing punctuation stripped from extracted URLs
const trailingPunct = ".,;:!?)>]'\""

// ContainsURL reports whether text contains an http:// or https:// URL.
func ContainsURL(text string) bool {
	return urlRe.MatchString(text)
}

// ExtractURLs returns every URL in text in order of first appearance,
// with trailing punctuation stripped from each match. Duplicates within
// the same text are preserved; de-duplication is a caller concern.
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	if matches == nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimRight(m, trailingPunct))
	}
	return out
}
