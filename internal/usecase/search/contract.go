package search

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Index is the similarity index contract for query-time search.
type Index interface {
	Search(ctx context.Context, vector []float32, scope domain.Scope, k int) ([]domain.SearchResult, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ResultCache holds recent results keyed by the enhanced query and scope.
type ResultCache interface {
	Get(ctx context.Context, enhancedQuery string, k int, scope domain.Scope) ([]domain.SearchResult, bool)
	Put(ctx context.Context, enhancedQuery string, k int, scope domain.Scope, results []domain.SearchResult)
}
