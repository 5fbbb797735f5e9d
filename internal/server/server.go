// Package server provides the HTTP API for Quill.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/coverage"
	"github.com/inkstone/quill/internal/engine"
	"github.com/inkstone/quill/internal/grounding"
	"github.com/inkstone/quill/internal/ingest"
	"github.com/inkstone/quill/internal/snapshot"
	"github.com/inkstone/quill/internal/storage"
)

// Server is the HTTP server for the Quill API.
type Server struct {
	engine    *engine.Engine
	analyzer  *coverage.Analyzer
	validator *grounding.Validator
	ingestor  *ingest.Ingestor
	snapshots *snapshot.Manager
	storage   storage.Store
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	eng *engine.Engine,
	analyzer *coverage.Analyzer,
	validator *grounding.Validator,
	ingestor *ingest.Ingestor,
	snapshots *snapshot.Manager,
	store storage.Store,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:    eng,
		analyzer:  analyzer,
		validator: validator,
		ingestor:  ingestor,
		snapshots: snapshots,
		storage:   store,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/search/batch", s.handleSearchBatch)
	r.Post("/api/v1/outline/coverage", s.handleOutlineCoverage)
	r.Post("/api/v1/outline/validate", s.handleOutlineValidate)
	r.Post("/api/v1/documents", s.handleCreateDocument)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Get("/api/v1/documents/{id}", s.handleGetDocument)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
