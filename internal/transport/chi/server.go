package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	logpkg "github.com/kailas-cloud/docdex/internal/logger"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
)

// maxSearchLimit bounds per-request result counts at the API edge.
const maxSearchLimit = 50

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes ingestion, search and summary operations over HTTP.
type Server struct {
	jobs          JobScheduler
	search        Searcher
	index         Indexer
	summaries     SummaryReader
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	jobs JobScheduler,
	search Searcher,
	index Indexer,
	summaries SummaryReader,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		jobs:      jobs,
		search:    search,
		index:     index,
		summaries: summaries,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, CodeJobNotFound),
		sentinelHandler(domain.ErrSummaryNotFound, http.StatusNotFound, CodeSummaryNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
		sentinelHandler(domain.ErrPersistence, http.StatusInternalServerError, CodePersistenceError),
	}
	return s
}

// Routes mounts every API handler on the router.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/documents", s.SubmitDocument)
		r.Delete("/documents/{documentID}", s.DeleteDocument)
		r.Get("/documents/{documentID}/summary", s.GetSummary)
		r.Get("/jobs", s.ListJobs)
		r.Get("/jobs/{jobID}", s.GetJob)
		r.Post("/search", s.Search)
		r.Get("/collections/{collectionID}/count", s.CollectionCount)
	})
}

// SubmitDocument handles POST /api/v1/documents.
func (s *Server) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	var req SubmitDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.jobs.Submit(domain.DocumentRef{
		DocumentID:   req.DocumentID,
		CollectionID: req.CollectionID,
		URL:          req.URL,
		Name:         req.Name,
		Subject:      req.Subject,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/jobs/"+id)
	writeJSON(w, http.StatusAccepted, SubmitDocumentResponse{
		JobID:  id,
		Status: string(job.StatusQueued),
	})
}

// GetJob handles GET /api/v1/jobs/{jobID}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.jobs.Status(gochi.URLParam(r, "jobID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, jobToResponse(j))
}

// ListJobs handles GET /api/v1/jobs. An optional document_id query parameter
// narrows the listing to one document.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.jobs.List(r.URL.Query().Get("document_id"))

	items := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = jobToResponse(j)
	}

	writeJSON(w, http.StatusOK, JobListResponse{
		Items: items,
		Total: len(items),
	})
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Limit < 0 || req.Limit > maxSearchLimit {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit))
		return
	}

	results, err := s.search.SearchRelevant(r.Context(), domain.SearchQuery{
		Text:    req.Query,
		Subject: req.Subject,
		Topic:   req.Topic,
		Scope: domain.Scope{
			CollectionID: req.CollectionID,
			DocumentID:   req.DocumentID,
		},
		Limit: req.Limit,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToItem(results[i])
	}

	writeJSON(w, http.StatusOK, SearchResultListResponse{
		Items: items,
		Total: len(items),
	})
}

// CollectionCount handles GET /api/v1/collections/{collectionID}/count.
func (s *Server) CollectionCount(w http.ResponseWriter, r *http.Request) {
	collectionID := gochi.URLParam(r, "collectionID")

	n, err := s.index.Count(r.Context(), domain.Scope{CollectionID: collectionID})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CollectionCountResponse{
		CollectionID: collectionID,
		Chunks:       n,
	})
}

// DeleteDocument handles DELETE /api/v1/documents/{documentID}. An optional
// collection_id query parameter scopes the cache invalidation.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := gochi.URLParam(r, "documentID")

	removed, err := s.index.DeleteDocument(r.Context(), documentID, r.URL.Query().Get("collection_id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteDocumentResponse{
		DocumentID:    documentID,
		ChunksRemoved: removed,
	})
}

// GetSummary handles GET /api/v1/documents/{documentID}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summaries.Get(r.Context(), gochi.URLParam(r, "documentID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryToResponse(sum))
}

// HealthCheck handles GET /health. A degraded service still answers 200: the
// store is up and cached results serve, only fresh embeddings are unavailable.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]HealthCheckStatus, len(report.Checks))
	for name, c := range report.Checks {
		checks[name] = HealthCheckStatus{
			Status: string(c.Status),
			Error:  c.Error,
		}
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func jobToResponse(j job.Job) JobResponse {
	resp := JobResponse{
		JobID:        j.ID(),
		DocumentID:   j.Ref().DocumentID,
		CollectionID: j.Ref().CollectionID,
		DocumentName: j.Ref().Name,
		Status:       string(j.Status()),
		Progress:     j.Progress(),
		Message:      j.Message(),
		ErrorMessage: j.ErrorMessage(),
		CreatedAt:    j.CreatedAt(),
	}
	if !j.StartedAt().IsZero() {
		t := j.StartedAt()
		resp.StartedAt = &t
	}
	if !j.CompletedAt().IsZero() {
		t := j.CompletedAt()
		resp.CompletedAt = &t
	}
	return resp
}

func searchResultToItem(r domain.SearchResult) SearchResultItem {
	return SearchResultItem{
		Content:      r.Content,
		Score:        r.Score,
		DocumentID:   r.DocumentID,
		CollectionID: r.CollectionID,
		DocumentName: r.DocumentName,
		ChunkIndex:   r.ChunkIndex,
		TotalChunks:  r.TotalChunks,
		Page:         r.Page,
	}
}

func summaryToResponse(s domain.DocumentSummary) SummaryResponse {
	return SummaryResponse{
		DocumentID:   s.DocumentID,
		CollectionID: s.CollectionID,
		DocumentName: s.DocumentName,
		Summary:      s.Summary,
		ChunkCount:   s.ChunkCount,
		CreatedAt:    s.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrJobNotFound,
		domain.ErrSummaryNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrPersistence,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler surfaces the full validation message; those messages only
// ever describe caller input.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	// Request-scoped logger carries the request id when the middleware is on.
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
