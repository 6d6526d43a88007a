package workflow

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"lexclause/internal/model"
	"lexclause/internal/observability/metrics"
	"lexclause/internal/resilience"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from the
// infrastructure system.
type Runtime struct {
	Adapter       model.Adapter
	Exec          *resilience.Executor
	Limiter       *rate.Limiter
	Workers       int
	InvokeTimeout time.Duration
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

func workerCount(rt *Runtime, clauseCount int) int {
	workers := rt.Workers
	if workers <= 0 {
		workers = 4
	}
	return max(min(workers, clauseCount), 1)
}
