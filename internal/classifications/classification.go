// Package classifications exposes the clause classification domain: the
// request surface, validation, and the bridge into the workflow pipeline.
package classifications

import "lexclause/internal/clause"

// ClassifyRequest is the wire shape of a classification request. Exactly one
// of Text or PDFBase64 supplies the document source.
type ClassifyRequest struct {
	Text        string             `json:"text,omitempty"`
	PDFBase64   string             `json:"pdf_base64,omitempty"`
	Model       string             `json:"model,omitempty"`
	ClauseTypes clause.CategorySet `json:"clause_types,omitempty"`
}

// ClassifyCommand is the decoded form consumed by the System: the PDF source
// is already base64-decoded.
type ClassifyCommand struct {
	Text        string
	PDF         []byte
	Model       string
	ClauseTypes clause.CategorySet
}

// HealthStatus reports service readiness and the active configuration
// surface callers can rely on.
type HealthStatus struct {
	Status             string             `json:"status"`
	Version            string             `json:"version"`
	SupportedModels    []string           `json:"supported_models"`
	DefaultClauseTypes clause.CategorySet `json:"default_clause_types"`
	PDFSupport         bool               `json:"pdf_support"`
}
