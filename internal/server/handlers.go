package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))

	start := time.Now()
	var (
		results []*models.SearchResult
		err     error
	)
	if query.RecencyWeight > 0 || query.QualityWeight > 0 {
		results, err = s.engine.SearchWithWeights(r.Context(), &query)
	} else {
		results, err = s.engine.Search(r.Context(), &query)
	}
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     query.Query,
	})
}

type batchSearchRequest struct {
	Queries []string               `json:"queries"`
	Limit   int                    `json:"limit,omitempty"`
	Filter  *models.MetadataFilter `json:"filter,omitempty"`
}

type batchSearchResponse struct {
	Results   [][]*models.SearchResult `json:"results"`
	QueryTime int64                    `json:"query_time_ms"`
}

func (s *Server) handleSearchBatch(w http.ResponseWriter, r *http.Request) {
	var req batchSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Queries) == 0 {
		s.respondError(w, http.StatusBadRequest, "queries cannot be empty")
		return
	}
	s.logger.Debug("batch search request", zap.Int("queries", len(req.Queries)), zap.Int("limit", req.Limit))

	start := time.Now()
	results, err := s.engine.SearchBatch(r.Context(), req.Queries, req.Limit, req.Filter)
	if err != nil {
		s.logger.Error("batch search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &batchSearchResponse{
		Results:   results,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

type outlineRequest struct {
	Outline  *models.Outline `json:"outline"`
	Keywords []string        `json:"keywords,omitempty"`
}

func (s *Server) handleOutlineCoverage(w http.ResponseWriter, r *http.Request) {
	var req outlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Outline == nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("outline coverage request",
		zap.String("title", req.Outline.Title),
		zap.Int("sections", len(req.Outline.Sections)))
	if err := s.analyzer.AnalyzeOutline(r.Context(), req.Outline, req.Keywords); err != nil {
		s.logger.Error("coverage analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, req.Outline)
}

func (s *Server) handleOutlineValidate(w http.ResponseWriter, r *http.Request) {
	var req outlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Outline == nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("outline validate request",
		zap.String("title", req.Outline.Title),
		zap.Strings("keywords", req.Keywords))
	if err := s.analyzer.AnalyzeOutline(r.Context(), req.Outline, req.Keywords); err != nil {
		s.logger.Error("coverage analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.validator.Validate(req.Outline, req.Keywords)
	s.respondJSON(w, http.StatusOK, req.Outline)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("create document request", zap.String("id", input.ID), zap.String("title", input.Title))
	doc, err := s.ingestor.IngestDocument(r.Context(), &input)
	if err != nil {
		s.logger.Error("ingest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.snapshots.Rebuild(r.Context()); err != nil {
		s.logger.Error("snapshot rebuild failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": doc.ID, "status": "indexed"})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	docs, err := s.storage.ListDocuments(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if err := s.ingestor.DeleteDocument(r.Context(), id); err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.snapshots.Rebuild(r.Context()); err != nil {
		s.logger.Error("snapshot rebuild failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docCount, err := s.storage.CountDocuments(ctx)
	if err != nil {
		s.logger.Error("status: count documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chunkCount, err := s.storage.CountChunks(ctx)
	if err != nil {
		s.logger.Error("status: count chunks failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats := s.snapshots.Stats()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents":         docCount,
		"chunks":            chunkCount,
		"snapshot_chunks":   stats.Chunks,
		"snapshot_built_at": stats.BuiltAt,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
