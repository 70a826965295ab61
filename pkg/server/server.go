package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/backend"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/config"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/gateway"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/gateway/middleware"
	"github.com/seanlee10/claude-code-tracing-with-phoenix/pkg/telemetry/metrics"
)

// Server is the gateway HTTP server. It wires the request pipeline
// handler, the liveness check, and the optional metrics endpoint behind
// the shared middleware chain.
type Server struct {
	config       *config.Config
	invoker      backend.Invoker
	collector    *metrics.Collector
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new gateway server. The invoker performs backend
// calls (wrap it for tracing before passing it in). The collector may be
// nil when metrics are disabled.
func NewServer(cfg *config.Config, invoker backend.Invoker, collector *metrics.Collector) *Server {
	return &Server{
		config:       cfg,
		invoker:      invoker,
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Proxy.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Proxy.ReadTimeout,
		WriteTimeout:   s.config.Proxy.WriteTimeout,
		IdleTimeout:    s.config.Proxy.IdleTimeout,
		MaxHeaderBytes: s.config.Proxy.MaxHeaderBytes,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server",
			"address", s.config.Proxy.ListenAddress,
			"backend_url", s.config.Backend.BaseURL,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Set up signal handlers
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Proxy.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Proxy.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
//
// The liveness check is registered for GET only; any other method on
// /health falls through to the catch-all pipeline like every other path.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	var recorder gateway.RequestRecorder
	if s.collector != nil {
		recorder = s.collector
	}
	pipelineHandler := gateway.NewHandler(s.invoker, recorder)
	healthHandler := gateway.NewHealthHandler()

	mux.Handle("GET /health", healthHandler)
	if s.collector != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}
	mux.Handle("/", pipelineHandler)

	// Apply middleware chain
	var handler http.Handler = mux

	corsConfig := s.convertCORSConfig()
	handler = middleware.CORSMiddleware(corsConfig)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// convertCORSConfig converts config.CORSConfig to middleware.CORSConfig.
func (s *Server) convertCORSConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:        s.config.Proxy.CORS.Enabled,
		AllowedOrigins: s.config.Proxy.CORS.AllowedOrigins,
		AllowedMethods: s.config.Proxy.CORS.AllowedMethods,
		AllowedHeaders: s.config.Proxy.CORS.AllowedHeaders,
		MaxAge:         s.config.Proxy.CORS.MaxAge,
	}
}
