package index

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

// ChunkStore persists chunk rows and serves scoped lookups.
type ChunkStore interface {
	Add(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error
	Count(ctx context.Context, scope domain.Scope) (int, error)
	DeleteDocument(ctx context.Context, documentID string) (int64, error)
}

// Embedder vectorizes a batch of chunk texts in one provider call.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// SummaryStore removes summary records tied to deleted documents.
type SummaryStore interface {
	Delete(ctx context.Context, documentID string) error
}

// CacheInvalidator drops cached search results made stale by index writes.
type CacheInvalidator interface {
	InvalidateCollection(ctx context.Context, collectionID string) int64
	InvalidateDocument(ctx context.Context, documentID string) int64
}
