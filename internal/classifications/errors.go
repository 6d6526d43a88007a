package classifications

import (
	"errors"
	"net/http"

	"lexclause/internal/clause"
	"lexclause/internal/ingest"
	"lexclause/internal/workflow"
)

// Domain errors for classification operations.
var (
	ErrMissingSource     = errors.New("request must supply text or pdf_base64")
	ErrConflictingSource = errors.New("request must supply text or pdf_base64, not both")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrInvalidRequest    = errors.New("invalid classification request")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingSource),
		errors.Is(err, ErrConflictingSource),
		errors.Is(err, ErrUnsupportedModel),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, clause.ErrInvalidCategories),
		errors.Is(err, ingest.ErrDecode):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrServiceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
