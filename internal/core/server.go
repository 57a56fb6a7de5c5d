// Package core provides the API chassis for the FeedGuard optimizer service.
// It builds the chi router and enforces cross-cutting concerns -- security,
// logging, observability, rate limiting, and error handling -- before requests
// reach the domain handlers.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"feedguard/internal/config"
)

// MetricsCollector defines the interface for recording API telemetry.
// The telemetry package provides the production implementation; tests may
// leave it nil to disable recording.
type MetricsCollector interface {
	// RecordRequest records one handled request with its route pattern,
	// status code, and handler duration.
	RecordRequest(method, route string, status int, duration time.Duration)
}

// RouteRegistrar registers a group of domain routes on a router. Handler
// packages expose registrars; main wires them into the server. This
// indirection avoids import cycles between core and handler packages.
type RouteRegistrar func(r chi.Router)

// Server encapsulates all dependencies for the optimizer API, allowing for
// easy injection during testing and distinct configuration for different
// environments.
type Server struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *Validator
	Metrics   MetricsCollector

	// MetricsHandler serves the exposition endpoint at GET /metrics.
	// When nil the route is not mounted.
	MetricsHandler http.Handler

	// V1RouteRegistrars are invoked under the /v1 route group during
	// MountRoutes. Populated by the application entry point.
	V1RouteRegistrars []RouteRegistrar

	router *chi.Mux
}

// NewServer initializes dependencies, sets up the router, and prepares the
// server for route mounting. It performs a fail-fast check on critical
// configuration.
//
// The caller is responsible for mounting routes (via MountRoutes) after
// construction. This separation allows tests to customize route registration.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	s := &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(logger),
		router:    chi.NewRouter(),
	}

	return s, nil
}

// Handler returns the http.Handler interface for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown performs a graceful termination of server resources. The service
// holds no external connections, so this only flushes state and logs the
// shutdown for operational visibility.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("server shutdown initiated")

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.Logger.Info("server shutdown complete")
	return nil
}
