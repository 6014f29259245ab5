// Package strings holds small list helpers for configuration values.
package strings

import "strings"

// DedupeAndTrim trims every element and drops blanks and repeats, keeping
// first-seen order. Comma-separated env lists such as broker addresses go
// through it before use.
func DedupeAndTrim(values []string) []string {
	if values == nil {
		return nil
	}
	out := values[:0:0]
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
