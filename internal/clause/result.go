package clause

import "fmt"

// ClassificationResult is the per-clause output of the pipeline: the original
// clause text, the assigned category, the model's raw confidence, its bucketed
// tier, and a short summary of what the clause does.
type ClassificationResult struct {
	Clause     string  `json:"clause"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Tier       Tier    `json:"confidence_level"`
	Summary    string  `json:"summary"`
}

// Metadata describes the run that produced a DocumentResult.
type Metadata struct {
	Model       string      `json:"model"`
	ClauseCount int         `json:"clause_count"`
	ClauseTypes CategorySet `json:"clause_types"`
}

// DocumentResult is the aggregate outcome for a whole document. Results
// preserve clause order. Error is set only on whole-document failure, in
// which case Results is empty.
type DocumentResult struct {
	Results []ClassificationResult `json:"results"`
	Summary string                 `json:"document_summary,omitempty"`
	Meta    *Metadata              `json:"metadata,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Unclassified produces the degraded result recorded when a single clause
// cannot be classified. The document as a whole still succeeds.
func Unclassified(c Clause, reason string) ClassificationResult {
	return ClassificationResult{
		Clause:     c.Text,
		Label:      LabelUnclassified,
		Confidence: 0.0,
		Tier:       TierVeryLow,
		Summary:    fmt.Sprintf("classification failed: %s", reason),
	}
}

// ErrorResult wraps a whole-document failure in the response envelope.
func ErrorResult(err error) *DocumentResult {
	return &DocumentResult{
		Results: []ClassificationResult{},
		Error:   err.Error(),
	}
}
