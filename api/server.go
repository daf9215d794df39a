// Package api exposes the query builder over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/Konsultn-Engineering/sqlbridge/idgen"
)

// Config contains dependencies for creating a server.
type Config struct {
	// Addr is host:port to listen on.
	Addr string
	// Sessions backs the CRUD routes and the health check.
	Sessions Sessions
	// RequestIDs generates ids for requests without an X-Request-ID header.
	// Defaults to UUIDs.
	RequestIDs idgen.Generator

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	MaxBodyBytes      int64

	Logger zerolog.Logger
}

// Server is the HTTP front end.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	listener   net.Listener
	logger     zerolog.Logger
}

// New builds the server and its routes without listening.
func New(cfg Config) *Server {
	logger := cfg.Logger.With().Str("component", "api").Logger()

	ids := cfg.RequestIDs
	if ids == nil {
		ids = idgen.UUIDGenerator{}
	}
	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}
	idleTimeout := cfg.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 120 * time.Second
	}

	h := &handlers{sessions: cfg.Sessions, maxBodyBytes: cfg.MaxBodyBytes}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/insert", h.insert)
	mux.HandleFunc("POST /api/delete", h.delete)
	mux.HandleFunc("POST /api/update", h.update)
	mux.HandleFunc("POST /api/select", h.selectGoods)
	mux.HandleFunc("GET /api/testGet", h.testGet)
	mux.HandleFunc("GET /health", h.health)

	handler := cors.AllowAll().Handler(
		withRequestLogger(logger, ids, withRecovery(mux)),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		handler: handler,
		logger:  logger,
	}
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves in a background goroutine. Bind
// errors are returned directly.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting HTTP server")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
