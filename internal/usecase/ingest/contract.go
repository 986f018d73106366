package ingest

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

// Fetcher retrieves raw document bytes from the source location.
type Fetcher interface {
	Fetch(ctx context.Context, ref domain.DocumentRef) ([]byte, error)
}

// Summarizer produces a short document summary from extracted text.
type Summarizer interface {
	Summarize(ctx context.Context, documentName, content string) (string, error)
}

// Indexer embeds and persists the chunks of one document.
type Indexer interface {
	AddDocument(ctx context.Context, chunks []chunk.Chunk, subject string) (int, error)
}

// SummaryStore persists document summary records.
type SummaryStore interface {
	Save(ctx context.Context, summary domain.DocumentSummary) error
}

// CacheInvalidator drops cached search results made stale by the new rows.
type CacheInvalidator interface {
	InvalidateCollection(ctx context.Context, collectionID string) int64
	InvalidateDocument(ctx context.Context, documentID string) int64
}

// ProgressFunc receives pipeline progress as a percentage and a stage message.
type ProgressFunc func(progress int, message string)
