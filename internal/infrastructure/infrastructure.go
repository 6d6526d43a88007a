// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, metrics, model
// adapters, resilience, rate limiting) that the classification pipeline
// requires.
package infrastructure

import (
	"log/slog"
	"os"

	"golang.org/x/time/rate"

	"lexclause/internal/config"
	"lexclause/internal/model"
	"lexclause/internal/observability/metrics"
	"lexclause/internal/resilience"
	"lexclause/pkg/lifecycle"
)

// Infrastructure holds the core systems required by the domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Selector  *model.Selector
	Executor  *resilience.Executor
	Limiter   *rate.Limiter
}

// New creates an Infrastructure from the application configuration. Model
// adapters are registered per configured provider; the anthropic adapter is
// only registered when an API key is present.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	selector := model.NewSelector(cfg.Classifier.Provider)
	selector.Register("agent", model.NewAgentAdapter(cfg.Agent))
	if cfg.Anthropic.Enabled() {
		selector.Register("anthropic", model.NewAnthropicAdapter(cfg.Anthropic.APIKey))
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   metrics.New(),
		Selector:  selector,
		Executor:  resilience.NewExecutor(cfg.Resilience.Policy(), logger),
		Limiter:   rate.NewLimiter(rate.Limit(cfg.Classifier.RateLimit), cfg.Classifier.RateBurst),
	}, nil
}
