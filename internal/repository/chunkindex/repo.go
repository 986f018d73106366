// Package chunkindex persists document chunks and their vectors as the
// FT-indexed hash rows that similarity search runs against.
package chunkindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

// store is the consumer interface for the chunk index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) (int64, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters map[string]string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements chunk persistence and KNN lookup over the shared FT index.
type Repo struct {
	store     store
	vectorDim int
}

// New creates a chunk index repository. vectorDim sizes the HNSW vector field.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// EnsureIndex creates the chunk FT index if it does not exist yet.
// Safe to call concurrently: a lost creation race is not an error.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName())
	if err != nil {
		return fmt.Errorf("%w: check index: %w", domain.ErrPersistence, err)
	}
	if exists {
		return nil
	}

	def, err := buildIndex(r.vectorDim)
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("%w: create index: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Add writes all chunk rows of a document in one pipelined batch. If any row
// fails, every key of the batch is removed so no partial document stays
// indexed.
func (r *Repo) Add(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error {
	if len(chunks) == 0 {
		return nil
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: %d vectors for %d chunks", domain.ErrValidation, len(vectors), len(chunks))
	}

	items := make([]db.HashSetItem, len(chunks))
	keys := make([]string, len(chunks))
	for i, c := range chunks {
		keys[i] = chunkKey(c.DocumentID(), c.Index())
		items[i] = db.HashSetItem{Key: keys[i], Fields: chunkToHash(c, vectors[i])}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		if _, delErr := r.store.DelMulti(ctx, keys); delErr != nil {
			return errors.Join(
				fmt.Errorf("%w: store chunks: %w", domain.ErrPersistence, err),
				fmt.Errorf("roll back partial batch: %w", delErr),
			)
		}
		return fmt.Errorf("%w: store chunks: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Search runs a KNN query restricted to the scope's tag filters. A missing
// index means nothing was ever added: empty result, not an error.
func (r *Repo) Search(ctx context.Context, vector []float32, scope domain.Scope, k int) ([]domain.SearchResult, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: search vector is empty", domain.ErrValidation)
	}
	if k <= 0 {
		k = domain.DefaultSearchLimit
	}

	q := &db.KNNQuery{
		IndexName:    indexName(),
		Filters:      scopeFilters(scope),
		Vector:       vector,
		K:            k,
		ReturnFields: searchReturnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: search knn: %w", domain.ErrPersistence, err)
	}

	return parseSearchResults(sr), nil
}

// Count returns the number of indexed chunks within the scope.
func (r *Repo) Count(ctx context.Context, scope domain.Scope) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName(), scopeFilters(scope))
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: count chunks: %w", domain.ErrPersistence, err)
	}
	return n, nil
}

// DeleteDocument removes every chunk row of a document and returns the number
// of rows removed. Unknown documents remove zero rows without error.
func (r *Repo) DeleteDocument(ctx context.Context, documentID string) (int64, error) {
	keys, err := r.store.Scan(ctx, chunkKeyPattern(documentID))
	if err != nil {
		return 0, fmt.Errorf("%w: scan chunks: %w", domain.ErrPersistence, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	n, err := r.store.DelMulti(ctx, keys)
	if err != nil {
		return 0, fmt.Errorf("%w: delete chunks: %w", domain.ErrPersistence, err)
	}
	return n, nil
}

// scopeFilters maps a scope to TAG equality filters. A document filter makes
// the collection filter redundant, so only the narrowest one is sent.
func scopeFilters(scope domain.Scope) map[string]string {
	switch {
	case scope.DocumentID != "":
		return map[string]string{fieldDocumentID: scope.DocumentID}
	case scope.CollectionID != "":
		return map[string]string{fieldCollectionID: scope.CollectionID}
	default:
		return nil
	}
}
