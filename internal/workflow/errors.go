// Package workflow implements the clause classification pipeline as a state
// graph: segment → classify → aggregate. Per-clause invocation failures
// degrade individual results; only total model-service unavailability fails
// the document.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrSegmentFailed      = errors.New("segmentation failed")
	ErrClassifyFailed     = errors.New("classification failed")
	ErrAggregateFailed    = errors.New("aggregation failed")
	ErrServiceUnavailable = errors.New("model service unavailable for all clauses")
)
