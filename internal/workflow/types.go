package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"lexclause/internal/clause"
)

const (
	KeyRequest = "request"
	KeyClauses = "clauses"
	KeyResults = "results"
	KeyResult  = "document_result"
)

// Request carries the immutable inputs for one document classification run.
// It is established once per request and never mutated during processing.
type Request struct {
	RequestID  uuid.UUID
	Text       string
	ModelID    string
	Categories clause.CategorySet
}

func extractRequest(s state.State) (Request, error) {
	val, ok := s.Get(KeyRequest)
	if !ok {
		return Request{}, fmt.Errorf("%w: missing %s in state", ErrSegmentFailed, KeyRequest)
	}

	req, ok := val.(Request)
	if !ok {
		return Request{}, fmt.Errorf("%w: %s is not Request", ErrSegmentFailed, KeyRequest)
	}

	return req, nil
}

func extractClauses(s state.State) ([]clause.Clause, error) {
	val, ok := s.Get(KeyClauses)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrClassifyFailed, KeyClauses)
	}

	clauses, ok := val.([]clause.Clause)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []clause.Clause", ErrClassifyFailed, KeyClauses)
	}

	return clauses, nil
}

func extractResults(s state.State) ([]clause.ClassificationResult, error) {
	val, ok := s.Get(KeyResults)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAggregateFailed, KeyResults)
	}

	results, ok := val.([]clause.ClassificationResult)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []clause.ClassificationResult", ErrAggregateFailed, KeyResults)
	}

	return results, nil
}
