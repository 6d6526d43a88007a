package workflow

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"lexclause/internal/clause"
	"lexclause/internal/model"
	"lexclause/pkg/formatting"
)

// ClassifyNode returns a state node that classifies each clause against the
// external model with bounded errgroup concurrency. Tasks are indexed by
// clause position and results collated by index, so completion order never
// affects output order. A single clause's failure degrades that clause to
// Unclassified and processing continues; the node fails the document only
// when every invocation failed with a service-availability error or the
// request context was cancelled.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		req, err := extractRequest(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		clauses, err := extractClauses(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		results, err := classifyClauses(ctx, rt, req, clauses)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"request_id", req.RequestID,
			"clause_count", len(results),
		)

		s = s.Set(KeyResults, results)
		return s, nil
	})
}

func classifyClauses(ctx context.Context, rt *Runtime, req Request, clauses []clause.Clause) ([]clause.ClassificationResult, error) {
	results := make([]clause.ClassificationResult, len(clauses))
	unavailable := make([]bool, len(clauses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(rt, len(clauses)))

	for i := range clauses {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			result, unavail := classifyClause(gctx, rt, req, clauses[i])

			// A cancelled request aborts the document; degraded results only
			// stand in for per-clause failures.
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = result
			unavailable[i] = unavail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifyFailed, err)
	}

	if len(clauses) > 0 && allTrue(unavailable) {
		return nil, ErrServiceUnavailable
	}

	return results, nil
}

// classifyClause runs one invocation under the rate limiter, the retry and
// breaker policy, and the per-invocation timeout, then validates the raw
// output. It always produces a result; the second return reports whether a
// failure was a service-availability problem rather than a bad answer.
func classifyClause(ctx context.Context, rt *Runtime, req Request, c clause.Clause) (clause.ClassificationResult, bool) {
	task, err := clause.BuildTask(c, req.Categories)
	if err != nil {
		return degrade(rt, req, c, "invalid_categories", err), false
	}

	if rt.Limiter != nil {
		if err := rt.Limiter.Wait(ctx); err != nil {
			return degrade(rt, req, c, "canceled", err), model.IsUnavailable(err)
		}
	}

	var raw *clause.RawModelResult
	operation := fmt.Sprintf("classify:%s", req.ModelID)
	err = rt.Exec.Execute(ctx, operation, func(ctx context.Context) error {
		invokeCtx := ctx
		if rt.InvokeTimeout > 0 {
			var cancel context.CancelFunc
			invokeCtx, cancel = context.WithTimeout(ctx, rt.InvokeTimeout)
			defer cancel()
		}

		var invokeErr error
		raw, invokeErr = rt.Adapter.Invoke(invokeCtx, task, req.ModelID)
		return invokeErr
	}, model.ClassifyError)
	if err != nil {
		return degrade(rt, req, c, failureReason(err), err), model.IsUnavailable(err)
	}

	tier, err := clause.Calibrate(raw.Confidence)
	if err != nil {
		return degrade(rt, req, c, "confidence_range", err), false
	}

	label, ok := req.Categories.Resolve(raw.Label)
	if !ok {
		err := fmt.Errorf("%w: %q", clause.ErrLabelNotAllowed, raw.Label)
		return degrade(rt, req, c, "invalid_label", err), false
	}

	rt.Metrics.RecordClause(req.ModelID, string(tier))

	return clause.ClassificationResult{
		Clause:     c.Text,
		Label:      label,
		Confidence: raw.Confidence,
		Tier:       tier,
		Summary:    raw.Summary,
	}, false
}

func degrade(rt *Runtime, req Request, c clause.Clause, reason string, err error) clause.ClassificationResult {
	rt.Metrics.RecordClauseError(req.ModelID, reason)
	rt.Logger.Warn("clause classification failed",
		"request_id", req.RequestID,
		"position", c.Position,
		"reason", reason,
		"error", err,
	)

	return clause.Unclassified(c, formatting.Truncate(err.Error(), 200))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, model.ErrMalformed):
		return "malformed"
	case model.IsUnavailable(err):
		return "unavailable"
	default:
		return "error"
	}
}

func allTrue(flags []bool) bool {
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
