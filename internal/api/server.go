// Package api exposes the chatbot over HTTP.
//
// Endpoints:
//
//	GET  /         → service info
//	GET  /health   → liveness probe
//	GET  /ready    → readiness probe (pings the database)
//	POST /api/chat → chat endpoint
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout caps header reads to block Slowloris-style clients.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Chat answers can involve two model calls, so this stays generous.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Answerer    Answerer      // Required
	Pool        *pgxpool.Pool // Optional: nil makes /ready report unavailable
	CORSOrigins []string
	Logger      log.Logger
}

// Server is the chatbot's HTTP server.
type Server struct {
	mux    *http.ServeMux
	cors   []string
	logger log.Logger
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Answerer == nil {
		return nil, errors.New("api: answerer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.With("component", "api")

	mux := http.NewServeMux()
	NewChatHandler(cfg.Answerer, logger).RegisterRoutes(mux)
	NewHealthHandler(cfg.Pool, logger).RegisterRoutes(mux)
	NewInfoHandler().RegisterRoutes(mux)

	return &Server{mux: mux, cors: cfg.CORSOrigins, logger: logger}, nil
}

// Handler returns the mux with middleware applied.
// Middleware order: recovery → logging → CORS → routes.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
		corsMiddleware(s.cors),
	)
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
