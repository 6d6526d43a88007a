// Package api assembles the API module: the classification domain system,
// route registration, and the middleware stack.
package api

import (
	"fmt"
	"net/http"

	"lexclause/internal/config"
	"lexclause/internal/infrastructure"
	"lexclause/pkg/handlers"
	"lexclause/pkg/middleware"
	"lexclause/pkg/routes"
)

// NewHandler creates the API handler with all domain routes and middleware.
// Requests that match no registered route receive a JSON error envelope
// rather than the mux's plain-text response.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	domain := NewDomain(cfg, infra)

	mux := http.NewServeMux()
	routes.Register(mux, domain.Classifications.Handler().Routes())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondError(w, infra.Logger, http.StatusNotFound,
			fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
	})

	stack := middleware.New()
	stack.Use(middleware.Logger(infra.Logger))
	stack.Use(middleware.CORS(&cfg.API.CORS))
	stack.Use(middleware.MaxBody(cfg.API.MaxBodySizeBytes()))
	stack.Use(infra.Metrics.Middleware)

	return stack.Apply(mux)
}
