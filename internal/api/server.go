// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/smaquant/smaquant/internal/api/handler"
	"github.com/smaquant/smaquant/internal/api/middleware"
	"github.com/smaquant/smaquant/internal/metrics"
)

// Server is the HTTP server exposing the backtest API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// Dependencies holds the wired components the server routes to.
type Dependencies struct {
	Backtest *handler.BacktestHandler
	Metrics  *metrics.Registry // optional; enables the metrics endpoint
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Backtest == nil {
		return nil, fmt.Errorf("backtest handler is required")
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	// Logging and metrics wrap every route; auth is applied per route group.
	var root http.Handler = mux
	if deps.Metrics != nil {
		root = metrics.HTTPMiddleware(deps.Metrics)(root)
	}
	root = metrics.LoggingMiddleware(logger)(root)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	auth := middleware.APIKeyAuth(cfg.APIKey)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.Handle("POST /api/v1/backtests", auth(http.HandlerFunc(deps.Backtest.Create)))
	s.mux.Handle("GET /api/v1/backtests", auth(http.HandlerFunc(deps.Backtest.List)))
	s.mux.Handle("GET /api/v1/backtests/{id}", auth(http.HandlerFunc(deps.Backtest.GetStatus)))

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
