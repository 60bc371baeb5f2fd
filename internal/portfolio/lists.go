package portfolio

import "strings"

// SplitList parses comma separated form text. Entries are trimmed and blank
// entries dropped, so "a, ,b," yields [a b]. Empty input yields an empty,
// non-nil slice.
func SplitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinList renders a list back into the text a form field shows.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
