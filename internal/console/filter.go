package console

import "strings"

// Filter returns the items whose name contains query, ignoring case, in
// their original order. An empty query matches nothing.
func Filter[T any](items []T, query string, name func(T) string) []T {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []T
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), q) {
			out = append(out, it)
		}
	}
	return out
}
