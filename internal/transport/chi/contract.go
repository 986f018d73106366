package chi

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
)

// JobScheduler queues documents for ingestion and reports job state.
type JobScheduler interface {
	Submit(ref domain.DocumentRef) (string, error)
	Status(jobID string) (job.Job, error)
	List(documentID string) []job.Job
}

// Searcher answers similarity queries over indexed chunks.
type Searcher interface {
	SearchRelevant(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
}

// Indexer serves the write-side operations exposed over HTTP.
type Indexer interface {
	DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error)
	Count(ctx context.Context, scope domain.Scope) (int, error)
}

// SummaryReader loads stored document summaries.
type SummaryReader interface {
	Get(ctx context.Context, documentID string) (domain.DocumentSummary, error)
}

// HealthChecker probes service components.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
