package clause

import "errors"

// Sentinel errors for clause pipeline operations.
var (
	ErrInvalidCategories = errors.New("invalid category set")
	ErrConfidenceRange   = errors.New("confidence out of range")
	ErrLabelNotAllowed   = errors.New("label not in category set")
)
