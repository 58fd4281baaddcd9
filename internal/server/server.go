// Package server exposes docpress over HTTP: a rendered index page plus a
// JSON API for fetching, transforming, and cache-managing documents.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docpress/docpress/internal/registry"
	"github.com/docpress/docpress/internal/source"
	"github.com/docpress/docpress/internal/store"
	"github.com/docpress/docpress/internal/transform"
)

// Config holds server configuration.
type Config struct {
	Port      int
	IndexFile string // markdown file rendered on the index page
	AllowAll  bool   // allow all CORS origins (dev mode)
}

// Server serves registered documents and the transform API.
type Server struct {
	cfg        Config
	reg        *registry.Registry
	cache      *store.Store
	fetcher    source.Fetcher
	tr         *transform.Transformer
	log        *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies.
func New(cfg Config, reg *registry.Registry, cache *store.Store, fetcher source.Fetcher, tr *transform.Transformer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:     cfg,
		reg:     reg,
		cache:   cache,
		fetcher: fetcher,
		tr:      tr,
		log:     log,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{name}", s.handleGetDocument)
		r.Delete("/documents/{name}/cache", s.handleInvalidateCache)
		r.Post("/transform", s.handleTransform)
	})

	return r
}

// Router returns the chi router, useful for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("docpress server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
