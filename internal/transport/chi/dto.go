package chi

import "time"

// ErrorCode is the machine-readable class carried in every error response.
type ErrorCode string

const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeJobNotFound            ErrorCode = "job_not_found"
	CodeSummaryNotFound        ErrorCode = "summary_not_found"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodePersistenceError       ErrorCode = "persistence_error"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SubmitDocumentRequest queues a document for background ingestion.
// DocumentID is optional; the job ID is used when it is absent.
type SubmitDocumentRequest struct {
	DocumentID   string `json:"document_id,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
	URL          string `json:"url"`
	Name         string `json:"name"`
	Subject      string `json:"subject,omitempty"`
}

// SubmitDocumentResponse acknowledges an accepted ingestion job.
type SubmitDocumentResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// JobResponse is the externally visible state of one ingestion job.
type JobResponse struct {
	JobID        string     `json:"job_id"`
	DocumentID   string     `json:"document_id"`
	CollectionID string     `json:"collection_id,omitempty"`
	DocumentName string     `json:"document_name"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	Message      string     `json:"message,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// JobListResponse lists jobs, newest first.
type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Total int           `json:"total"`
}

// SearchRequest is a similarity query over indexed chunks. Subject and Topic
// feed query enhancement; CollectionID and DocumentID narrow the scope.
type SearchRequest struct {
	Query        string `json:"query"`
	Subject      string `json:"subject,omitempty"`
	Topic        string `json:"topic,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
	DocumentID   string `json:"document_id,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// SearchResultItem is one scored passage.
type SearchResultItem struct {
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	DocumentID   string  `json:"document_id"`
	CollectionID string  `json:"collection_id,omitempty"`
	DocumentName string  `json:"document_name"`
	ChunkIndex   int     `json:"chunk_index"`
	TotalChunks  int     `json:"total_chunks"`
	Page         int     `json:"page,omitempty"`
}

// SearchResultListResponse wraps scored passages for one query.
type SearchResultListResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// CollectionCountResponse reports how many chunks a collection holds.
type CollectionCountResponse struct {
	CollectionID string `json:"collection_id"`
	Chunks       int    `json:"chunks"`
}

// DeleteDocumentResponse reports how many chunk rows a delete removed.
type DeleteDocumentResponse struct {
	DocumentID    string `json:"document_id"`
	ChunksRemoved int64  `json:"chunks_removed"`
}

// SummaryResponse is a stored document summary.
type SummaryResponse struct {
	DocumentID   string    `json:"document_id"`
	CollectionID string    `json:"collection_id,omitempty"`
	DocumentName string    `json:"document_name"`
	Summary      string    `json:"summary"`
	ChunkCount   int       `json:"chunk_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// HealthCheckStatus is one component probe in the health report.
type HealthCheckStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse aggregates component checks into one service status.
type HealthResponse struct {
	Status string                       `json:"status"`
	Checks map[string]HealthCheckStatus `json:"checks"`
}
