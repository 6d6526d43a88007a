// Package clause defines the core types and pure operations of the
// classification pipeline: clauses, category sets, classification tasks,
// per-clause results, confidence calibration, and document-level aggregation.
package clause

import (
	"fmt"
	"strings"
)

// LabelUnclassified is the sentinel label assigned to clauses whose
// classification failed and was recovered locally.
const LabelUnclassified = "Unclassified"

// Clause is an ordered, contiguous unit of document text. Position is the
// clause's index in document order. Clauses are immutable once segmented.
type Clause struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// CategorySet is the ordered set of labels a classification is constrained
// to. Order is preserved as supplied by the caller.
type CategorySet []string

// Validate rejects empty category sets and duplicate labels.
// Labels differing only by case are still duplicates.
func (cs CategorySet) Validate() error {
	if len(cs) == 0 {
		return fmt.Errorf("%w: category set is empty", ErrInvalidCategories)
	}

	seen := make(map[string]string, len(cs))
	for _, label := range cs {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: blank label", ErrInvalidCategories)
		}
		key := strings.ToLower(label)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate label %q and %q", ErrInvalidCategories, prev, label)
		}
		seen[key] = label
	}

	return nil
}

// Resolve returns the canonical category matching label, ignoring case and
// surrounding whitespace. Returns false when the label is not a member.
func (cs CategorySet) Resolve(label string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, c := range cs {
		if strings.ToLower(c) == needle {
			return c, true
		}
	}
	return "", false
}
