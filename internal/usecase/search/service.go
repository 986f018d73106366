package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Service answers scoped similarity queries over the chunk index.
type Service struct {
	index  Index
	embed  Embedder
	cache  ResultCache
	policy domain.RelevancePolicy
	logger *zap.Logger
}

// New creates a search service. cache may be nil to disable result caching.
func New(
	index Index, embed Embedder, cache ResultCache,
	policy domain.RelevancePolicy, logger *zap.Logger,
) *Service {
	return &Service{
		index:  index,
		embed:  embed,
		cache:  cache,
		policy: policy,
		logger: logger,
	}
}

// Search returns raw-scored candidates ordered by descending similarity.
// The query text is enhanced with the same contextual tags chunks were
// indexed with, so query and chunk embeddings share one space.
// An empty result is not an error.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q = q.WithDefaults()

	enhanced := q.Enhanced()

	if s.cache != nil {
		if results, ok := s.cache.Get(ctx, enhanced, q.Limit, q.Scope); ok {
			s.logger.Debug("Search served from cache", zap.Int("results", len(results)))
			return results, nil
		}
	}

	embRes, err := s.embed.Embed(ctx, enhanced)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results, err := s.index.Search(ctx, embRes.Embedding, q.Scope, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	if s.cache != nil {
		s.cache.Put(ctx, enhanced, q.Limit, q.Scope, results)
	}

	s.logger.Debug("Search completed",
		zap.Int("results", len(results)),
		zap.Int("limit", q.Limit),
		zap.Int("query_tokens", embRes.TotalTokens))

	return results, nil
}

// SearchRelevant runs Search and applies the two-tier relevance policy
// over the raw candidates.
func (s *Service) SearchRelevant(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	q = q.WithDefaults()

	results, err := s.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	return s.policy.Apply(results, q.Limit), nil
}
