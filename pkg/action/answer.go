package action

import "strings"

const (
	queryMarker  = "Query:"
	resultMarker = "Result:"
)

// CleanAnswer strips scaffold syntax from a raw final answer: one layer
// of enclosing brackets, and, when the answer restates the query in
// "Query: ... Result: ..." form, everything up to and including the last
// Result: marker.
func CleanAnswer(raw string) string {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "[") && strings.HasSuffix(clean, "]") && len(clean) >= 2 {
		clean = strings.TrimSpace(clean[1 : len(clean)-1])
	}

	if strings.HasPrefix(clean, queryMarker) {
		if idx := strings.LastIndex(clean, resultMarker); idx >= 0 {
			clean = strings.TrimSpace(clean[idx+len(resultMarker):])
		}
	}

	return clean
}
