package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"lexclause/internal/clause"
)

// Execute runs the classification pipeline for a single document. It builds
// the state graph (segment → classify → aggregate, skipping classify when
// no clauses were found), executes it, and extracts the DocumentResult from
// the final state.
func Execute(ctx context.Context, rt *Runtime, req Request) (*clause.DocumentResult, error) {
	start := time.Now()

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyRequest, req)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		rt.Metrics.RecordDocument(req.ModelID, "error", time.Since(start))
		if errors.Is(err, ErrServiceUnavailable) {
			return nil, ErrServiceUnavailable
		}
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	doc, err := extractResult(finalState)
	if err != nil {
		rt.Metrics.RecordDocument(req.ModelID, "error", time.Since(start))
		return nil, err
	}

	rt.Metrics.RecordDocument(req.ModelID, "success", time.Since(start))
	return doc, nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("lexclause-classify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("segment", SegmentNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("aggregate", AggregateNode(rt)); err != nil {
		return nil, err
	}

	// segment → classify (when clauses were found)
	if err := graph.AddEdge("segment", "classify", hasClauses); err != nil {
		return nil, err
	}

	// segment → aggregate (no clauses: emit the empty result shape)
	if err := graph.AddEdge("segment", "aggregate", state.Not(hasClauses)); err != nil {
		return nil, err
	}

	// classify → aggregate (unconditional)
	if err := graph.AddEdge("classify", "aggregate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("segment"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("aggregate"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*clause.DocumentResult, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	doc, ok := val.(*clause.DocumentResult)
	if !ok {
		return nil, fmt.Errorf("%s is not *clause.DocumentResult", KeyResult)
	}

	return doc, nil
}

func hasClauses(s state.State) bool {
	clauses, err := extractClauses(s)
	if err != nil {
		return false
	}
	return len(clauses) > 0
}
