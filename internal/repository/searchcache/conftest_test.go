package searchcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
)

type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	setFn      func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
	delMultiFn func(ctx context.Context, keys []string) (int64, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) DelMulti(ctx context.Context, keys []string) (int64, error) {
	if m.delMultiFn != nil {
		return m.delMultiFn(ctx, keys)
	}
	return int64(len(keys)), nil
}

func newTestCache(t *testing.T) (*Cache, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, 0, nil, zap.NewNop()), ms
}

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			Content:      "quadratic equations",
			Score:        0.91,
			DocumentID:   "doc-1",
			CollectionID: "course-7",
			DocumentName: "algebra_notes.pdf",
			ChunkIndex:   0,
			TotalChunks:  3,
			Page:         2,
		},
		{
			Content:      "completing the square",
			Score:        0.64,
			DocumentID:   "doc-2",
			CollectionID: "course-7",
			DocumentName: "worksheet.pdf",
			ChunkIndex:   1,
			TotalChunks:  2,
			Page:         1,
		},
	}
}
