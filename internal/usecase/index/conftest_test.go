package index

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

type mockChunks struct {
	addFn    func(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error
	countFn  func(ctx context.Context, scope domain.Scope) (int, error)
	deleteFn func(ctx context.Context, documentID string) (int64, error)
	adds     int
}

func (m *mockChunks) Add(ctx context.Context, chunks []chunk.Chunk, vectors [][]float32) error {
	m.adds++
	if m.addFn != nil {
		return m.addFn(ctx, chunks, vectors)
	}
	return nil
}

func (m *mockChunks) Count(ctx context.Context, scope domain.Scope) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, scope)
	}
	return 0, nil
}

func (m *mockChunks) DeleteDocument(ctx context.Context, documentID string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, documentID)
	}
	return 0, nil
}

type mockBatchEmbedder struct {
	batchFn   func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
	calls     int
	lastTexts []string
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	m.lastTexts = texts
	if m.batchFn != nil {
		return m.batchFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: vectors, TotalTokens: len(texts) * 3}, nil
}

type mockSummaries struct {
	deleteFn func(ctx context.Context, documentID string) error
	deletes  []string
}

func (m *mockSummaries) Delete(ctx context.Context, documentID string) error {
	m.deletes = append(m.deletes, documentID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, documentID)
	}
	return nil
}

type mockInvalidator struct {
	collections []string
	documents   []string
}

func (m *mockInvalidator) InvalidateCollection(_ context.Context, collectionID string) int64 {
	m.collections = append(m.collections, collectionID)
	return 1
}

func (m *mockInvalidator) InvalidateDocument(_ context.Context, documentID string) int64 {
	m.documents = append(m.documents, documentID)
	return 1
}

type testMocks struct {
	chunks    *mockChunks
	embed     *mockBatchEmbedder
	summaries *mockSummaries
	cache     *mockInvalidator
}

func newTestService(t *testing.T) (*Service, *testMocks) {
	t.Helper()
	m := &testMocks{
		chunks:    &mockChunks{},
		embed:     &mockBatchEmbedder{},
		summaries: &mockSummaries{},
		cache:     &mockInvalidator{},
	}
	svc := New(m.chunks, m.embed, m.summaries, m.cache, zap.NewNop())
	return svc, m
}

// testChunks builds n chunks of one document, pages numbered from 1.
func testChunks(t *testing.T, n int) []chunk.Chunk {
	t.Helper()
	chunks := make([]chunk.Chunk, n)
	for i := range chunks {
		c, err := chunk.New("doc-1", "course-7", "algebra_notes.pdf", fmt.Sprintf("passage %d", i), i, n, i+1)
		if err != nil {
			t.Fatalf("chunk.New: %v", err)
		}
		chunks[i] = c
	}
	return chunks
}
