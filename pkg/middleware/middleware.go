// Package middleware provides an ordered HTTP middleware stack and the
// request-level middleware used by the API surface.
package middleware

import (
	"net/http"
	"slices"
)

// System manages an ordered stack of HTTP middleware. The first middleware
// registered is the outermost wrapper.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	mw []func(http.Handler) http.Handler
}

// New creates a middleware System, optionally seeded with initial middleware
// in registration order.
func New(mw ...func(http.Handler) http.Handler) System {
	return &stack{mw: mw}
}

func (s *stack) Use(fn func(http.Handler) http.Handler) {
	s.mw = append(s.mw, fn)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(s.mw) {
		handler = mw(handler)
	}
	return handler
}
