package classifications

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"lexclause/internal/clause"
	"lexclause/internal/ingest"
	"lexclause/internal/workflow"
)

// System is the classification domain boundary consumed by API composition:
// route exposure, single-document classification, and service health.
type System interface {
	Handler() *Handler
	Classify(ctx context.Context, cmd ClassifyCommand) (*clause.DocumentResult, error)
	Health() HealthStatus
}

// Options carries the immutable configuration surface for the classification
// service: the model allow-list, the fallback category set, and the workflow
// runtime assembled by composition code.
type Options struct {
	Version            string
	DefaultModel       string
	SupportedModels    []string
	DefaultClauseTypes clause.CategorySet
	Runtime            *workflow.Runtime
}

type service struct {
	opts   Options
	logger *slog.Logger
}

// New creates a classification service implementing the System interface.
func New(opts Options, logger *slog.Logger) System {
	return &service{
		opts:   opts,
		logger: logger.With("system", "classifications"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Classify validates the command, resolves the document source to plain
// text, and runs the pipeline. Validation failures surface before any
// clause processing begins.
func (s *service) Classify(ctx context.Context, cmd ClassifyCommand) (*clause.DocumentResult, error) {
	if cmd.Text == "" && len(cmd.PDF) == 0 {
		return nil, ErrMissingSource
	}
	if cmd.Text != "" && len(cmd.PDF) > 0 {
		return nil, ErrConflictingSource
	}

	modelID := cmd.Model
	if modelID == "" {
		modelID = s.opts.DefaultModel
	}
	if !slices.Contains(s.opts.SupportedModels, modelID) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelID)
	}

	// An absent category list falls back to the defaults; an explicitly
	// empty one is a validation error.
	categories := cmd.ClauseTypes
	if categories == nil {
		categories = s.opts.DefaultClauseTypes
	}
	if err := categories.Validate(); err != nil {
		return nil, err
	}

	text := cmd.Text
	if len(cmd.PDF) > 0 {
		extracted, err := ingest.PDF(cmd.PDF)
		if err != nil {
			return nil, err
		}
		text = extracted
	}

	req := workflow.Request{
		RequestID:  uuid.New(),
		Text:       text,
		ModelID:    modelID,
		Categories: categories,
	}

	s.logger.InfoContext(ctx, "classifying document",
		"request_id", req.RequestID,
		"model", modelID,
		"source", sourceKind(cmd),
		"categories", len(categories),
	)

	return workflow.Execute(ctx, s.opts.Runtime, req)
}

func (s *service) Health() HealthStatus {
	return HealthStatus{
		Status:             "ok",
		Version:            s.opts.Version,
		SupportedModels:    s.opts.SupportedModels,
		DefaultClauseTypes: s.opts.DefaultClauseTypes,
		PDFSupport:         true,
	}
}

func sourceKind(cmd ClassifyCommand) string {
	if len(cmd.PDF) > 0 {
		return "pdf"
	}
	return "text"
}
