package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"lexclause/internal/clause"
)

// AggregateNode returns a state node that assembles the document-level
// result: per-clause results in original order, the document summary, and
// run metadata. When segmentation produced no clauses it emits the empty
// result shape directly.
func AggregateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("aggregate: %w", err)
		}

		var results []clause.ClassificationResult
		if _, ok := s.Get(KeyResults); ok {
			results, err = extractResults(s)
			if err != nil {
				return s, fmt.Errorf("aggregate: %w", err)
			}
		}

		doc := clause.Aggregate(results, req.ModelID, req.Categories)

		rt.Logger.InfoContext(
			ctx, "aggregate node complete",
			"request_id", req.RequestID,
			"clause_count", doc.Meta.ClauseCount,
		)

		s = s.Set(KeyResult, doc)
		return s, nil
	})
}
