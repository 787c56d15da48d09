// Package server implements the Anchorsmith HTTP API.
//
// The API mirrors the CLI: POST a graph snapshot and get back
// validation issues, a flow analysis, or a generated program bundle.
// All endpoints are stateless; results are cached by graph content
// hash in the configured backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/anchorsmith/anchorsmith/pkg/cache"
	"github.com/anchorsmith/anchorsmith/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server with the given config. The cache backend is
// opened according to cfg.Cache.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	cfg.applyDefaults()
	if logger == nil {
		logger = log.Default()
	}

	c, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	var keyer cache.Keyer
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Scope)
	}

	return &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(c, keyer, logger),
		logger: logger,
	}, nil
}

func newCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis)
	case "file", "":
		dir := cfg.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/generate", s.handleGenerate)
		r.Post("/preview", s.handlePreview)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return s.runner.Close()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
