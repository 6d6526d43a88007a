package clause

import (
	"fmt"
	"strings"
)

// Aggregate assembles the document-level result from per-clause outcomes.
// Results keep their clause order; the document summary tallies labels in
// order of first appearance.
func Aggregate(results []ClassificationResult, modelID string, categories CategorySet) *DocumentResult {
	if results == nil {
		results = []ClassificationResult{}
	}

	return &DocumentResult{
		Results: results,
		Summary: summarize(results),
		Meta: &Metadata{
			Model:       modelID,
			ClauseCount: len(results),
			ClauseTypes: categories,
		},
	}
}

func summarize(results []ClassificationResult) string {
	if len(results) == 0 {
		return "No clauses found to summarize."
	}

	var order []string
	counts := make(map[string]int, len(results))

	for _, r := range results {
		if _, seen := counts[r.Label]; !seen {
			order = append(order, r.Label)
		}
		counts[r.Label]++
	}

	parts := make([]string, 0, len(order))
	for _, label := range order {
		count := counts[label]
		plural := ""
		if count > 1 {
			plural = "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s clause%s", count, label, plural))
	}

	return fmt.Sprintf("This document contains %s.", joinList(parts))
}

// joinList renders ["a"] as "a", ["a","b"] as "a and b", and longer lists
// as "a, b and c".
func joinList(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
