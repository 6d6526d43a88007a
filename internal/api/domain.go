package api

import (
	"lexclause/internal/classifications"
	"lexclause/internal/clause"
	"lexclause/internal/config"
	"lexclause/internal/infrastructure"
	"lexclause/internal/workflow"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Classifications classifications.System
}

// NewDomain creates all domain systems from the configuration and
// infrastructure, including the workflow runtime they execute against.
func NewDomain(cfg *config.Config, infra *infrastructure.Infrastructure) *Domain {
	rt := &workflow.Runtime{
		Adapter:       infra.Selector,
		Exec:          infra.Executor,
		Limiter:       infra.Limiter,
		Workers:       cfg.Classifier.Workers,
		InvokeTimeout: cfg.Classifier.InvokeTimeoutDuration(),
		Metrics:       infra.Metrics,
		Logger:        infra.Logger.With("workflow", "classify"),
	}

	classificationsSystem := classifications.New(classifications.Options{
		Version:            cfg.Version,
		DefaultModel:       cfg.Classifier.DefaultModel,
		SupportedModels:    cfg.Classifier.SupportedModels(),
		DefaultClauseTypes: clause.CategorySet(cfg.Classifier.DefaultClauseTypes),
		Runtime:            rt,
	}, infra.Logger)

	return &Domain{
		Classifications: classificationsSystem,
	}
}
