// Package server exposes the lookup and classification operations over HTTP
// for the web front ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nlitools/almagraph/internal/cache"
	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/pipeline"
	"github.com/nlitools/almagraph/internal/worker"
)

// Server serves the almagraph HTTP API.
type Server struct {
	cfg      model.ServerConfig
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
	limiter  *worker.Limiter

	respCache cache.Cache // nil when caching is disabled
	cacheTTL  time.Duration

	listener net.Listener
	server   *http.Server
	ready    chan struct{} // closed once the listener is up
}

// Addr returns the bound address. Valid only after Ready is closed.
func (s *Server) Addr() string { return s.listener.Addr().String() }

// Ready is closed once Run has bound the listener.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// New creates the API server. The response cache is layered (memory + disk)
// when a cache directory is configured, memory-only otherwise.
func New(cfg *model.Config, p *pipeline.Pipeline, logger *slog.Logger) *Server {
	srv := &Server{
		cfg:      cfg.Server,
		pipeline: p,
		logger:   logger,
		limiter:  worker.NewLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst),
		cacheTTL: cfg.Cache.TTL,
		ready:    make(chan struct{}),
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			srv.respCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			srv.respCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.wrap(srv.handleStatus))
	mux.HandleFunc("/api/lookup/", srv.wrap(srv.handleLookup))
	mux.HandleFunc("/api/catalog/", srv.wrap(srv.handleCatalog))
	mux.HandleFunc("/api/classify", srv.wrap(srv.handleClassify))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Run listens on the configured bind address and serves until ctx is
// cancelled. The dataset is loaded up front so a broken source fails fast
// instead of on the first request.
func (s *Server) Run(ctx context.Context) error {
	ds, err := s.pipeline.Dataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	for _, warning := range ds.Warnings {
		s.logger.Warn("dataset", slog.String("warning", warning))
	}
	stats := ds.Stats()
	s.logger.Info("dataset loaded",
		slog.Int("children", stats.Children),
		slog.Int("parents", stats.Parents),
		slog.Int("edges", stats.Edges),
		slog.Bool("catalog", stats.Catalog))

	listener, err := net.Listen("tcp", s.cfg.Bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	close(s.ready)
	s.logger.Info("api listening", slog.String("bind", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	return nil
}
