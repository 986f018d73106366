// Package ingest runs the document pipeline: fetch, parse, summarize, chunk,
// embed, persist, and cache refresh, with progress reported per stage.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/chunker"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
	"github.com/kailas-cloud/docdex/internal/parser"
)

// fallbackPreviewRunes bounds the content preview in a degraded summary.
const fallbackPreviewRunes = 500

// Service drives one document through the ingestion pipeline.
type Service struct {
	fetch     Fetcher
	summarize Summarizer
	chunker   *chunker.Chunker
	indexer   Indexer
	summaries SummaryStore
	cache     CacheInvalidator
	logger    *zap.Logger
}

// New creates an ingest service. cache may be nil to disable invalidation.
func New(
	fetch Fetcher, summarize Summarizer, ch *chunker.Chunker,
	indexer Indexer, summaries SummaryStore, cache CacheInvalidator,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetch:     fetch,
		summarize: summarize,
		chunker:   ch,
		indexer:   indexer,
		summaries: summaries,
		cache:     cache,
		logger:    logger,
	}
}

// Process ingests the referenced document and returns the number of chunks
// indexed. Progress is reported before each stage; the terminal report is the
// caller's. The summary stage degrades to a fallback text instead of failing
// the job; every other stage error aborts processing.
func (s *Service) Process(ctx context.Context, ref domain.DocumentRef, report ProgressFunc) (int, error) {
	if report == nil {
		report = func(int, string) {}
	}

	report(5, "Starting document processing")

	report(15, "Fetching and parsing document")
	data, err := s.fetch.Fetch(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("fetch document: %w", err)
	}
	parsed, err := parser.ForName(ref.Name).Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parse document: %w", err)
	}

	report(30, "Generating document summary")
	summaryText := s.summarizeOrFallback(ctx, ref.Name, parsed.Text)

	report(45, "Chunking document content")
	pieces := s.chunker.SplitPages(parsed.Text, parsed.Pages)

	report(60, "Preparing chunk metadata")
	chunks := make([]chunk.Chunk, len(pieces))
	for i, p := range pieces {
		c, err := chunk.New(ref.DocumentID, ref.CollectionID, ref.Name, p.Text, p.Index, p.Total, p.Page)
		if err != nil {
			return 0, fmt.Errorf("chunk metadata [%d]: %w", i, err)
		}
		chunks[i] = c
	}

	report(75, "Storing chunks in vector index")
	indexed, err := s.indexer.AddDocument(ctx, chunks, ref.Subject)
	if err != nil {
		return 0, fmt.Errorf("index document: %w", err)
	}

	report(90, "Storing document summary")
	record := domain.DocumentSummary{
		DocumentID:   ref.DocumentID,
		CollectionID: ref.CollectionID,
		DocumentName: ref.Name,
		Summary:      summaryText,
		ChunkCount:   indexed,
	}
	if err := s.summaries.Save(ctx, record); err != nil {
		return 0, fmt.Errorf("store summary: %w", err)
	}

	report(95, "Refreshing collection caches")
	s.invalidate(ctx, ref)

	s.logger.Info("document processed",
		zap.String("document_id", ref.DocumentID),
		zap.String("document_name", ref.Name),
		zap.Int("chunks", indexed),
	)
	return indexed, nil
}

// summarizeOrFallback returns the provider summary or, when the provider
// fails, a deterministic preview so the pipeline keeps its success path.
func (s *Service) summarizeOrFallback(ctx context.Context, name, content string) string {
	summary, err := s.summarize.Summarize(ctx, name, content)
	if err != nil {
		s.logger.Warn("summary generation failed, using fallback",
			zap.String("document_name", name),
			zap.Error(err),
		)
		return fallbackSummary(name, content)
	}
	return summary
}

// fallbackSummary is the degraded summary shape: document name plus a bounded
// content preview.
func fallbackSummary(name, content string) string {
	runes := []rune(content)
	if len(runes) > fallbackPreviewRunes {
		runes = runes[:fallbackPreviewRunes]
	}
	return fmt.Sprintf("Document: %s. Content preview: %s...", name, string(runes))
}

// invalidate drops scoped cached results. The cache logs its own failures; a
// missed invalidation expires with the entry TTL.
func (s *Service) invalidate(ctx context.Context, ref domain.DocumentRef) {
	if s.cache == nil {
		return
	}
	if ref.CollectionID != "" {
		s.cache.InvalidateCollection(ctx, ref.CollectionID)
	}
	if ref.DocumentID != "" {
		s.cache.InvalidateDocument(ctx, ref.DocumentID)
	}
}
