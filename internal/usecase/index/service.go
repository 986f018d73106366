// Package index drives the write side of the chunk index: enhancing and
// embedding chunk texts, persisting rows, and dropping stale cached results.
package index

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
	"github.com/kailas-cloud/docdex/internal/metrics"
)

// Service orchestrates chunk indexing and removal.
type Service struct {
	chunks    ChunkStore
	embed     Embedder
	summaries SummaryStore
	cache     CacheInvalidator
	logger    *zap.Logger
}

// New creates an index service. cache may be nil to disable invalidation.
func New(chunks ChunkStore, embed Embedder, summaries SummaryStore, cache CacheInvalidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chunks:    chunks,
		embed:     embed,
		summaries: summaries,
		cache:     cache,
		logger:    logger,
	}
}

// AddDocument embeds every chunk of a document and writes the rows in one
// batch. The stored text stays raw; only the embedded text carries the
// contextual tags. Returns the number of chunks indexed. Cache refresh is the
// ingest pipeline's stage, not part of the write.
func (s *Service) AddDocument(ctx context.Context, chunks []chunk.Chunk, subject string) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		topic := domain.TopicFromName(c.DocumentName())
		texts[i] = domain.EnhanceChunk(c.Text(), subject, topic, c.Page())
	}

	res, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	if err := s.chunks.Add(ctx, chunks, res.Embeddings); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	metrics.ChunksIndexedTotal.Add(float64(len(chunks)))

	s.logger.Info("document indexed",
		zap.String("document_id", chunks[0].DocumentID()),
		zap.Int("chunks", len(chunks)),
		zap.Int("embedding_tokens", res.TotalTokens),
	)
	return len(chunks), nil
}

// DeleteDocument removes a document's chunk rows and summary record, then
// drops the cached results that referenced it. Unknown documents remove zero
// rows without error. collectionID may be empty when the caller only knows
// the document.
func (s *Service) DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error) {
	removed, err := s.chunks.DeleteDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("delete chunks: %w", err)
	}

	if err := s.summaries.Delete(ctx, documentID); err != nil {
		return removed, fmt.Errorf("delete summary: %w", err)
	}

	s.invalidate(ctx, collectionID, documentID)

	s.logger.Info("document removed",
		zap.String("document_id", documentID),
		zap.Int64("chunks_removed", removed),
	)
	return removed, nil
}

// Count reports the number of indexed chunks within the scope.
func (s *Service) Count(ctx context.Context, scope domain.Scope) (int, error) {
	return s.chunks.Count(ctx, scope)
}

// invalidate drops scoped cached results after a successful write. The cache
// logs its own failures; a missed invalidation expires with the entry TTL.
func (s *Service) invalidate(ctx context.Context, collectionID, documentID string) {
	if s.cache == nil {
		return
	}
	if collectionID != "" {
		s.cache.InvalidateCollection(ctx, collectionID)
	}
	if documentID != "" {
		s.cache.InvalidateDocument(ctx, documentID)
	}
}
