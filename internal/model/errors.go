package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable indicates the model service could not be reached or
	// refused to serve the request.
	ErrUnavailable = errors.New("model service unavailable")
	// ErrMalformed indicates the model responded but its output could not
	// be parsed into the expected structure.
	ErrMalformed = errors.New("malformed model output")
	// ErrUnknownProvider indicates no adapter is registered for the
	// provider a model routes to.
	ErrUnknownProvider = errors.New("unknown model provider")
)

// StatusError carries an HTTP-level failure from a model provider.
type StatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "model status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("model %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("model %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Body))
}
