package tui

import (
	"strings"
	"unicode/utf8"
)

// clampString truncates s to maxLen runes, appending an ellipsis when it
// cut anything. Long model identifiers would otherwise wrap list rows.
func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
