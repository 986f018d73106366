package docdex

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
)

// --- jobScheduler mock ---

type mockScheduler struct {
	submitFn  func(ref domain.DocumentRef) (string, error)
	statusFn  func(jobID string) (job.Job, error)
	listFn    func(documentID string) []job.Job
	submitted []domain.DocumentRef
	starts    int
	stops     int
}

func (m *mockScheduler) Start(ctx context.Context) { m.starts++ }

func (m *mockScheduler) Stop() { m.stops++ }

func (m *mockScheduler) Submit(ref domain.DocumentRef) (string, error) {
	m.submitted = append(m.submitted, ref)
	if m.submitFn != nil {
		return m.submitFn(ref)
	}
	return "job-1", nil
}

func (m *mockScheduler) Status(jobID string) (job.Job, error) {
	if m.statusFn != nil {
		return m.statusFn(jobID)
	}
	return job.Job{}, domain.ErrJobNotFound
}

func (m *mockScheduler) List(documentID string) []job.Job {
	if m.listFn != nil {
		return m.listFn(documentID)
	}
	return nil
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn   func(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
	relevantFn func(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
	lastQuery  domain.SearchQuery
}

func (m *mockSearchUC) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	m.lastQuery = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, nil
}

func (m *mockSearchUC) SearchRelevant(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	m.lastQuery = q
	if m.relevantFn != nil {
		return m.relevantFn(ctx, q)
	}
	return nil, nil
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	deleteFn  func(ctx context.Context, documentID, collectionID string) (int64, error)
	countFn   func(ctx context.Context, scope domain.Scope) (int, error)
	lastScope domain.Scope
}

func (m *mockIndexUC) DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, documentID, collectionID)
	}
	return 0, nil
}

func (m *mockIndexUC) Count(ctx context.Context, scope domain.Scope) (int, error) {
	m.lastScope = scope
	if m.countFn != nil {
		return m.countFn(ctx, scope)
	}
	return 0, nil
}

// --- summaryReader mock ---

type mockSummaryReader struct {
	getFn func(ctx context.Context, documentID string) (domain.DocumentSummary, error)
}

func (m *mockSummaryReader) Get(ctx context.Context, documentID string) (domain.DocumentSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, documentID)
	}
	return domain.DocumentSummary{}, domain.ErrSummaryNotFound
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.report
}

// --- public Embedder mocks ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

// mockBatchEmbedder also implements BatchEmbedder.
type mockBatchEmbedder struct {
	mockEmbedder
	batchFn func(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	return m.batchFn(ctx, texts)
}

type testMocks struct {
	sched     *mockScheduler
	search    *mockSearchUC
	index     *mockIndexUC
	summaries *mockSummaryReader
	health    *mockHealthUC
}

func newTestClient(t *testing.T) (*Client, *testMocks) {
	t.Helper()

	m := &testMocks{
		sched:     &mockScheduler{},
		search:    &mockSearchUC{},
		index:     &mockIndexUC{},
		summaries: &mockSummaryReader{},
		health: &mockHealthUC{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.Check{
				healthuc.CheckStore: {Status: healthuc.CheckOK},
			},
		}},
	}

	c := &Client{
		searchSvc: m.search,
		indexSvc:  m.index,
		summaries: m.summaries,
		healthSvc: m.health,
		scheduler: m.sched,
	}
	return c, m
}

func testDomainJob(t *testing.T, id string) job.Job {
	t.Helper()
	j, err := job.New(id, domain.DocumentRef{
		DocumentID:   "doc-1",
		CollectionID: "course-7",
		URL:          "https://files.example.com/algebra_notes.pdf",
		Name:         "algebra_notes.pdf",
		Subject:      "Math",
	}, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return j
}
