// Package model defines the invocation boundary to external language model
// services and the adapters that implement it.
package model

import (
	"context"
	"fmt"

	"lexclause/internal/clause"
)

// Adapter invokes an external model service for a single classification
// task. Returned results are unvalidated; the pipeline checks label
// membership and confidence range.
type Adapter interface {
	Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error)
}

// Selector routes invocations to a provider-specific adapter based on the
// requested model. The resolve function maps a model identifier to the
// provider name it is served by.
type Selector struct {
	adapters map[string]Adapter
	resolve  func(modelID string) string
}

func NewSelector(resolve func(modelID string) string) *Selector {
	return &Selector{
		adapters: make(map[string]Adapter),
		resolve:  resolve,
	}
}

func (s *Selector) Register(provider string, adapter Adapter) {
	s.adapters[provider] = adapter
}

func (s *Selector) Invoke(ctx context.Context, task clause.ClassificationTask, modelID string) (*clause.RawModelResult, error) {
	provider := ""
	if s.resolve != nil {
		provider = s.resolve(modelID)
	}

	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q (model %q)", ErrUnknownProvider, provider, modelID)
	}

	return adapter.Invoke(ctx, task, modelID)
}
