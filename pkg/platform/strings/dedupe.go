// Package strings provides string manipulation utilities.
package strings

import (
	"sort"
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  CNRS ", "Inria", "CNRS", "", "  "})
//	// Returns: []string{"CNRS", "Inria"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// DedupeAndTrimSorted is like DedupeAndTrim but returns the result in
// lexicographic order. Filter-option vocabularies use it so rendered lists
// stay deterministic regardless of store iteration order.
func DedupeAndTrimSorted(values []string) []string {
	result := DedupeAndTrim(values)
	sort.Strings(result)
	return result
}
