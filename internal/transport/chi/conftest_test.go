package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
)

type mockScheduler struct {
	submitFn  func(ref domain.DocumentRef) (string, error)
	statusFn  func(jobID string) (job.Job, error)
	listFn    func(documentID string) []job.Job
	submitted []domain.DocumentRef
	listedID  string
}

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
	m.listedID = documentID
	if m.listFn != nil {
		return m.listFn(documentID)
	}
	return nil
}

type mockSearcher struct {
	searchFn  func(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
	lastQuery domain.SearchQuery
	calls     int
}

func (m *mockSearcher) SearchRelevant(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	m.calls++
	m.lastQuery = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return nil, nil
}

type mockIndexer struct {
	deleteFn  func(ctx context.Context, documentID, collectionID string) (int64, error)
	countFn   func(ctx context.Context, scope domain.Scope) (int, error)
	lastScope domain.Scope
}

func (m *mockIndexer) DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, documentID, collectionID)
	}
	return 0, nil
}

func (m *mockIndexer) Count(ctx context.Context, scope domain.Scope) (int, error) {
	m.lastScope = scope
	if m.countFn != nil {
		return m.countFn(ctx, scope)
	}
	return 0, nil
}

type mockSummaries struct {
	getFn func(ctx context.Context, documentID string) (domain.DocumentSummary, error)
}

func (m *mockSummaries) Get(ctx context.Context, documentID string) (domain.DocumentSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, documentID)
	}
	return domain.DocumentSummary{}, domain.ErrSummaryNotFound
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(ctx context.Context) healthuc.Report {
	return m.report
}

type testMocks struct {
	jobs      *mockScheduler
	search    *mockSearcher
	index     *mockIndexer
	summaries *mockSummaries
	health    *mockHealth
}

func newTestServer(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()

	m := &testMocks{
		jobs:      &mockScheduler{},
		search:    &mockSearcher{},
		index:     &mockIndexer{},
		summaries: &mockSummaries{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.Check{
				healthuc.CheckStore: {Status: healthuc.CheckOK},
			},
		}},
	}

	s := NewServer(m.jobs, m.search, m.index, m.summaries, m.health, zap.NewNop())
	r := gochi.NewRouter()
	s.Routes(r)
	return r, m
}

func doRequest(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func testJob(t *testing.T, id string) job.Job {
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
