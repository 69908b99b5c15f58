// Package chi exposes the HTTP API: search, health, service descriptor.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
	healthuc "github.com/neuralquery/neuralquery/internal/usecase/health"
	searchuc "github.com/neuralquery/neuralquery/internal/usecase/search"
	"github.com/neuralquery/neuralquery/internal/version"
)

// ServiceName appears in the health and root responses.
const ServiceName = "NeuralQuery Semantic Search API"

// SearchService runs the query pipeline.
type SearchService interface {
	Search(ctx context.Context, query string, topK int) (searchuc.Result, error)
}

// HealthService probes service readiness.
type HealthService interface {
	Check(ctx context.Context) healthuc.Status
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Server holds the HTTP handlers.
type Server struct {
	search        SearchService
	health        HealthService
	index         string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search SearchService, health HealthService, index string, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		index:  index,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable, "not_ready"),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"),
		sentinelHandler(domain.ErrTimeout, http.StatusServiceUnavailable, "timeout"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/search", s.handleSearch)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k"`
}

type searchResult struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	TopK    int            `json:"top_k"`
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

// handleSearch handles POST /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Code:    "bad_request",
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	topK := searchuc.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	res, err := s.search.Search(r.Context(), req.Query, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]searchResult, len(res.Matches))
	for i, m := range res.Matches {
		results[i] = searchResult{ID: m.ID, Score: m.Score, Metadata: m.Metadata}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   res.Query,
		TopK:    topK,
		Results: results,
		Count:   len(results),
	})
}

type healthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	Index        string `json:"index"`
	TotalVectors int    `json:"total_vectors"`
}

// handleHealth handles GET /health. Always answers, even when the probe fails.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.health.Check(r.Context())

	if !status.OK {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"detail": status.Reason,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		Service:      ServiceName,
		Index:        s.index,
		TotalVectors: status.TotalVectors,
	})
}

// handleRoot handles GET /.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"version": version.Version,
		"endpoints": map[string]string{
			"health":  "GET /health",
			"search":  "POST /search",
			"metrics": "GET /metrics",
		},
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("request failed", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "internal_error",
		Message: "internal error",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	writeJSON(w, status, resp)
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNotReady,
		domain.ErrStoreUnavailable,
		domain.ErrTimeout,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, ErrorResponse{Code: code, Message: msg})
		return true
	}
}

// validationHandler maps ValidationError to 422 with the offending field.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	resp := ErrorResponse{Code: "validation_failed", Message: domain.ErrValidation.Error()}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Field = vErr.Field
		resp.Message = vErr.Reason
	}
	writeError(w, http.StatusUnprocessableEntity, resp)
	return true
}
