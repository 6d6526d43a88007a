package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"lexclause/internal/api"
	"lexclause/internal/config"
	"lexclause/internal/infrastructure"
)

// buildRouter mounts the API handler under the configured base path and adds
// the native operational endpoints: liveness, readiness, and metrics.
func buildRouter(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	router := http.NewServeMux()

	apiHandler := api.NewHandler(cfg, infra)
	basePath := strings.TrimSuffix(cfg.API.BasePath, "/")
	router.Handle(basePath+"/", http.StripPrefix(basePath, apiHandler))

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	router.Handle("GET /metrics", infra.Metrics.Handler())

	return router
}
