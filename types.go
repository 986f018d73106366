package docdex

import (
	"time"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
)

// DocumentRef identifies a source document for ingestion: where to fetch it,
// what to call it, and which collection it lands in. DocumentID is optional;
// the job ID is used when it is absent. Subject is an optional contextual tag
// carried into chunk and query enhancement.
type DocumentRef struct {
	DocumentID   string
	CollectionID string
	URL          string
	Name         string
	Subject      string
}

// JobStatus is the lifecycle state of an ingestion job.
type JobStatus string

// Job states. Queued and Processing are transient; Completed and Failed are
// terminal.
const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsTerminal reports whether the job reached a final state.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job is the externally visible state of one ingestion job.
// StartedAt and CompletedAt are zero until the respective transition.
type Job struct {
	ID           string
	DocumentID   string
	CollectionID string
	DocumentName string
	Status       JobStatus
	Progress     int
	Message      string
	ErrorMessage string
	CreatedAt    time.Time
	StartedAt    time.Time
	CompletedAt  time.Time
}

// SearchQuery is a scoped similarity search request. Subject and Topic feed
// query enhancement and may be empty; CollectionID and DocumentID narrow the
// scope; Limit <= 0 selects the default.
type SearchQuery struct {
	Text         string
	Subject      string
	Topic        string
	CollectionID string
	DocumentID   string
	Limit        int
}

// SearchResult is one scored passage. Score is cosine similarity, higher is
// more relevant.
type SearchResult struct {
	Content      string
	Score        float64
	DocumentID   string
	CollectionID string
	DocumentName string
	ChunkIndex   int
	TotalChunks  int
	Page         int
}

// DocumentSummary is the stored summary record for an ingested document.
type DocumentSummary struct {
	DocumentID   string
	CollectionID string
	DocumentName string
	Summary      string
	ChunkCount   int
	CreatedAt    time.Time
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

func refToDomain(r DocumentRef) domain.DocumentRef {
	return domain.DocumentRef{
		DocumentID:   r.DocumentID,
		CollectionID: r.CollectionID,
		URL:          r.URL,
		Name:         r.Name,
		Subject:      r.Subject,
	}
}

func queryToDomain(q SearchQuery) domain.SearchQuery {
	return domain.SearchQuery{
		Text:    q.Text,
		Subject: q.Subject,
		Topic:   q.Topic,
		Scope: domain.Scope{
			CollectionID: q.CollectionID,
			DocumentID:   q.DocumentID,
		},
		Limit: q.Limit,
	}
}

func jobFromDomain(j job.Job) Job {
	return Job{
		ID:           j.ID(),
		DocumentID:   j.Ref().DocumentID,
		CollectionID: j.Ref().CollectionID,
		DocumentName: j.Ref().Name,
		Status:       JobStatus(j.Status()),
		Progress:     j.Progress(),
		Message:      j.Message(),
		ErrorMessage: j.ErrorMessage(),
		CreatedAt:    j.CreatedAt(),
		StartedAt:    j.StartedAt(),
		CompletedAt:  j.CompletedAt(),
	}
}

func resultFromDomain(r domain.SearchResult) SearchResult {
	return SearchResult{
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

func resultsFromDomain(rs []domain.SearchResult) []SearchResult {
	out := make([]SearchResult, len(rs))
	for i, r := range rs {
		out[i] = resultFromDomain(r)
	}
	return out
}

func summaryFromDomain(s domain.DocumentSummary) DocumentSummary {
	return DocumentSummary{
		DocumentID:   s.DocumentID,
		CollectionID: s.CollectionID,
		DocumentName: s.DocumentName,
		Summary:      s.Summary,
		ChunkCount:   s.ChunkCount,
		CreatedAt:    s.CreatedAt,
	}
}

func healthFromReport(r healthuc.Report) HealthStatus {
	checks := make(map[string]string, len(r.Checks))
	for name, c := range r.Checks {
		checks[name] = string(c.Status)
	}
	return HealthStatus{
		Status: string(r.Status),
		Checks: checks,
	}
}
