package ingest

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/chunker"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

type mockFetcher struct {
	fetchFn func(ctx context.Context, ref domain.DocumentRef) ([]byte, error)
	calls   int
}

func (m *mockFetcher) Fetch(ctx context.Context, ref domain.DocumentRef) ([]byte, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, ref)
	}
	return []byte("Algebra covers equations. Functions map inputs to outputs."), nil
}

type mockSummarizer struct {
	summarizeFn func(ctx context.Context, documentName, content string) (string, error)
	calls       int
}

func (m *mockSummarizer) Summarize(ctx context.Context, documentName, content string) (string, error) {
	m.calls++
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, documentName, content)
	}
	return "A tidy summary.", nil
}

type mockIndexer struct {
	addFn       func(ctx context.Context, chunks []chunk.Chunk, subject string) (int, error)
	calls       int
	lastChunks  []chunk.Chunk
	lastSubject string
}

func (m *mockIndexer) AddDocument(ctx context.Context, chunks []chunk.Chunk, subject string) (int, error) {
	m.calls++
	m.lastChunks = chunks
	m.lastSubject = subject
	if m.addFn != nil {
		return m.addFn(ctx, chunks, subject)
	}
	return len(chunks), nil
}

type mockSummaryStore struct {
	saveFn func(ctx context.Context, summary domain.DocumentSummary) error
	saved  []domain.DocumentSummary
}

func (m *mockSummaryStore) Save(ctx context.Context, summary domain.DocumentSummary) error {
	m.saved = append(m.saved, summary)
	if m.saveFn != nil {
		return m.saveFn(ctx, summary)
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

// progressLog records every report call in order.
type progressLog struct {
	steps    []int
	messages []string
}

func (p *progressLog) report(progress int, message string) {
	p.steps = append(p.steps, progress)
	p.messages = append(p.messages, message)
}

type testMocks struct {
	fetch     *mockFetcher
	summarize *mockSummarizer
	indexer   *mockIndexer
	summaries *mockSummaryStore
	cache     *mockInvalidator
}

func newTestService(t *testing.T) (*Service, *testMocks) {
	t.Helper()
	ch, err := chunker.New(chunker.DefaultChunkSize, chunker.DefaultOverlap)
	if err != nil {
		t.Fatalf("chunker.New: %v", err)
	}
	m := &testMocks{
		fetch:     &mockFetcher{},
		summarize: &mockSummarizer{},
		indexer:   &mockIndexer{},
		summaries: &mockSummaryStore{},
		cache:     &mockInvalidator{},
	}
	svc := New(m.fetch, m.summarize, ch, m.indexer, m.summaries, m.cache, zap.NewNop())
	return svc, m
}

// testRef names a plain-text source so parsing runs the real text parser.
func testRef() domain.DocumentRef {
	return domain.DocumentRef{
		DocumentID:   "doc-1",
		CollectionID: "course-7",
		URL:          "https://files.example.com/algebra_notes.txt",
		Name:         "algebra_notes.txt",
		Subject:      "Math",
	}
}
