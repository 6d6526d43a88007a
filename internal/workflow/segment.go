package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"lexclause/internal/segment"
)

// SegmentNode returns a state node that partitions the request text into
// ordered clauses. Empty or whitespace-only text yields zero clauses, which
// the graph routes straight to aggregation.
func SegmentNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("segment: %w", err)
		}

		clauses := segment.Split(req.Text)

		rt.Logger.InfoContext(
			ctx, "segment node complete",
			"request_id", req.RequestID,
			"clause_count", len(clauses),
		)

		s = s.Set(KeyClauses, clauses)
		return s, nil
	})
}
