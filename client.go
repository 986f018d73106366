package docdex

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/chunker"
	"github.com/kailas-cloud/docdex/internal/db"
	dbRedis "github.com/kailas-cloud/docdex/internal/db/redis"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/job"
	"github.com/kailas-cloud/docdex/internal/metrics"
	"github.com/kailas-cloud/docdex/internal/repository/chunkindex"
	"github.com/kailas-cloud/docdex/internal/repository/embcache"
	"github.com/kailas-cloud/docdex/internal/repository/searchcache"
	summaryrepo "github.com/kailas-cloud/docdex/internal/repository/summary"
	"github.com/kailas-cloud/docdex/internal/scheduler"
	"github.com/kailas-cloud/docdex/internal/transport/fetch"
	openaitr "github.com/kailas-cloud/docdex/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/docdex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docdex/internal/usecase/index"
	ingestuc "github.com/kailas-cloud/docdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultEmbeddingModel   = "text-embedding-3-large"
	defaultVectorDimensions = 3072
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
	SearchRelevant(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error)
}

type indexUseCase interface {
	DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error)
	Count(ctx context.Context, scope domain.Scope) (int, error)
}

type summaryReader interface {
	Get(ctx context.Context, documentID string) (domain.DocumentSummary, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type jobScheduler interface {
	Start(ctx context.Context)
	Stop()
	Submit(ref domain.DocumentRef) (string, error)
	Status(jobID string) (job.Job, error)
	List(documentID string) []job.Job
}

// embeddingProvider is the full provider contract the pipelines need.
type embeddingProvider interface {
	domain.Embedder
	domain.BatchEmbedder
}

// embeddingStore is the slice of the store the embedding cache needs.
type embeddingStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client is the docdex library entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	indexSvc  indexUseCase
	summaries summaryReader
	healthSvc healthUseCase
	scheduler jobScheduler

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a docdex Client, connects to the database and ensures the
// vector index exists. Call Start to launch the background ingestion worker.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docdex: database address required (use WithRedis)")
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("docdex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docdex: database not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, logger *zap.Logger) (*Client, error) {
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterIngestMetrics()

	chunkRepo := chunkindex.New(store, cfg.dimensions)
	if err := chunkRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("docdex: ensure index: %w", err)
	}
	summaryRepo := summaryrepo.New(store)
	resultCache := searchcache.New(store, cfg.searchTTL, metrics.SearchCacheTotal, logger)

	embedder, providerCheck := buildEmbedder(cfg, store, logger)

	searchSvc := searchuc.New(chunkRepo, embedder, resultCache, cfg.policy, logger)
	indexSvc := indexuc.New(chunkRepo, embedder, summaryRepo, resultCache, logger)

	ch, err := chunker.New(cfg.chunkSize, cfg.chunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("docdex: %w", err)
	}

	summarizer := buildSummarizer(cfg, logger)
	fetcher := fetch.NewHTTPFetcher(cfg.fetchTimeout, logger)
	ingestSvc := ingestuc.New(fetcher, summarizer, ch, indexSvc, summaryRepo, resultCache, logger)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		indexSvc:  indexSvc,
		summaries: summaryRepo,
		healthSvc: healthuc.New(store, providerCheck),
		scheduler: scheduler.New(ingestSvc, cfg.poll, logger),
	}, nil
}

// buildEmbedder assembles the decorator chain: provider -> cached -> instrumented.
func buildEmbedder(cfg *clientConfig, store embeddingStore, logger *zap.Logger) (embeddingProvider, healthuc.ProviderChecker) {
	var base embeddingProvider
	var check healthuc.ProviderChecker
	provider := "openai"

	switch {
	case cfg.embedder != nil:
		provider = "custom"
		base = &embedderAdapter{inner: cfg.embedder}
		if hc, ok := cfg.embedder.(interface {
			HealthCheck(ctx context.Context) error
		}); ok {
			check = hc
		}
	case cfg.openaiAPIKey != "":
		e := openaitr.NewEmbedder(&openaitr.Config{
			APIKey:     cfg.openaiAPIKey,
			BaseURL:    cfg.openaiBaseURL,
			Model:      cfg.embedModel,
			Dimensions: cfg.dimensions,
			Logger:     logger,
		})
		base = e
		check = e
	default:
		base = noopEmbedder{}
	}

	cached := embcache.New(base, store, cfg.embeddingTTL, metrics.EmbeddingCacheTotal, logger)
	return embeddinguc.NewInstrumentedEmbedder(cached, provider, cfg.embedModel, logger), check
}

func buildSummarizer(cfg *clientConfig, logger *zap.Logger) ingestuc.Summarizer {
	if cfg.openaiAPIKey == "" {
		return noopSummarizer{}
	}
	return openaitr.NewSummarizer(&openaitr.SummarizerConfig{
		APIKey:  cfg.openaiAPIKey,
		BaseURL: cfg.openaiBaseURL,
		Model:   cfg.summaryModel,
		Logger:  logger,
	})
}

// Start launches the background ingestion worker. Safe to call once;
// subsequent calls are no-ops. The context cancels in-flight job processing
// on shutdown.
func (c *Client) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.scheduler.Start(ctx)
	})
}

// Close stops the background worker, waits for the in-flight job and
// releases the database connection.
func (c *Client) Close() {
	c.stopOnce.Do(func() {
		c.scheduler.Stop()
		if c.store != nil {
			c.store.Close()
		}
	})
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SubmitDocument queues a document for background ingestion and returns the
// job ID. The job starts once Start has been called.
func (c *Client) SubmitDocument(ref DocumentRef) (string, error) {
	id, err := c.scheduler.Submit(refToDomain(ref))
	if err != nil {
		return "", fmt.Errorf("submit document: %w", err)
	}
	return id, nil
}

// Job returns the current state of an ingestion job.
func (c *Client) Job(jobID string) (Job, error) {
	j, err := c.scheduler.Status(jobID)
	if err != nil {
		return Job{}, fmt.Errorf("job status: %w", err)
	}
	return jobFromDomain(j), nil
}

// Jobs lists ingestion jobs, newest first. A non-empty documentID narrows
// the listing to one document.
func (c *Client) Jobs(documentID string) []Job {
	jobs := c.scheduler.List(documentID)
	out := make([]Job, len(jobs))
	for i, j := range jobs {
		out[i] = jobFromDomain(j)
	}
	return out
}

// Search returns relevance-filtered passages for the query: candidates pass
// the primary score threshold, relaxed to a secondary tier while fewer than
// the policy minimum qualify.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	results, err := c.searchSvc.SearchRelevant(ctx, queryToDomain(q))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resultsFromDomain(results), nil
}

// SearchRaw returns all scored candidates ordered by descending similarity,
// without relevance filtering.
func (c *Client) SearchRaw(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	results, err := c.searchSvc.Search(ctx, queryToDomain(q))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resultsFromDomain(results), nil
}

// CollectionCount reports how many chunks a collection holds.
func (c *Client) CollectionCount(ctx context.Context, collectionID string) (int, error) {
	n, err := c.indexSvc.Count(ctx, domain.Scope{CollectionID: collectionID})
	if err != nil {
		return 0, fmt.Errorf("collection count: %w", err)
	}
	return n, nil
}

// DeleteDocument removes a document's chunks and summary and refreshes the
// affected caches. collectionID may be empty when unknown; the collection
// cache signal is then skipped.
func (c *Client) DeleteDocument(ctx context.Context, documentID, collectionID string) (int64, error) {
	removed, err := c.indexSvc.DeleteDocument(ctx, documentID, collectionID)
	if err != nil {
		return removed, fmt.Errorf("delete document: %w", err)
	}
	return removed, nil
}

// Summary returns the stored summary for an ingested document.
func (c *Client) Summary(ctx context.Context, documentID string) (DocumentSummary, error) {
	s, err := c.summaries.Get(ctx, documentID)
	if err != nil {
		return DocumentSummary{}, fmt.Errorf("document summary: %w", err)
	}
	return summaryFromDomain(s), nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	return healthFromReport(c.healthSvc.Check(ctx))
}
