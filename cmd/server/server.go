package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lexclause/internal/config"
	"lexclause/internal/infrastructure"
)

type Server struct {
	infra *infrastructure.Infrastructure
	http  *http.Server

	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra: infra,
		http: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      buildRouter(cfg, infra),
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		},
		shutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
	}, nil
}

// Start begins serving and registers graceful shutdown with the lifecycle
// coordinator. It returns immediately; the listener runs until Shutdown.
func (s *Server) Start() error {
	logger := s.infra.Logger.With("system", "http")

	go func() {
		logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	s.infra.Lifecycle.OnShutdown(func() {
		<-s.infra.Lifecycle.Context().Done()
		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", "error", err)
			return
		}
		logger.Info("server shutdown complete")
	})

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
