package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
)

type mockIndex struct {
	searchFn func(ctx context.Context, vector []float32, scope domain.Scope, k int) ([]domain.SearchResult, error)
	calls    int
}

func (m *mockIndex) Search(ctx context.Context, vector []float32, scope domain.Scope, k int) ([]domain.SearchResult, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, scope, k)
	}
	return nil, nil
}

type mockEmbedder struct {
	result  domain.EmbeddingResult
	err     error
	calls   int
	lastArg string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.lastArg = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return m.result, nil
}

type mockCache struct {
	getFn func(ctx context.Context, enhancedQuery string, k int, scope domain.Scope) ([]domain.SearchResult, bool)
	putFn func(ctx context.Context, enhancedQuery string, k int, scope domain.Scope, results []domain.SearchResult)
	puts  int
}

func (m *mockCache) Get(ctx context.Context, enhancedQuery string, k int, scope domain.Scope) ([]domain.SearchResult, bool) {
	if m.getFn != nil {
		return m.getFn(ctx, enhancedQuery, k, scope)
	}
	return nil, false
}

func (m *mockCache) Put(ctx context.Context, enhancedQuery string, k int, scope domain.Scope, results []domain.SearchResult) {
	m.puts++
	if m.putFn != nil {
		m.putFn(ctx, enhancedQuery, k, scope, results)
	}
}

type testMocks struct {
	index *mockIndex
	embed *mockEmbedder
	cache *mockCache
}

func newTestService(t *testing.T) (*Service, *testMocks) {
	t.Helper()
	m := &testMocks{
		index: &mockIndex{},
		embed: &mockEmbedder{result: domain.EmbeddingResult{
			Embedding:   []float32{0.1, 0.2, 0.3},
			TotalTokens: 7,
		}},
		cache: &mockCache{},
	}
	svc := New(m.index, m.embed, m.cache, domain.DefaultRelevancePolicy(), zap.NewNop())
	return svc, m
}

func scored(scores ...float64) []domain.SearchResult {
	results := make([]domain.SearchResult, len(scores))
	for i, s := range scores {
		results[i] = domain.SearchResult{
			Content:      "passage",
			Score:        s,
			DocumentID:   "doc-1",
			CollectionID: "course-7",
		}
	}
	return results
}
