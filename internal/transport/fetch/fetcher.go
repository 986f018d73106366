// Package fetch retrieves source documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// DefaultTimeout bounds a single document download.
const DefaultTimeout = 60 * time.Second

// MaxDocumentBytes bounds how much of a source document is read into memory.
const MaxDocumentBytes = 50 << 20

// HTTPFetcher downloads source documents referenced by URL.
type HTTPFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPFetcher creates a fetcher. timeout <= 0 falls back to DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch returns the raw bytes behind the ref's URL. Every failure is
// wrapped with domain.ErrSourceUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref domain.DocumentRef) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", domain.ErrSourceUnavailable, ref.URL, err)
	}

	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", domain.ErrSourceUnavailable, ref.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: fetch %s: status %d: %s",
			domain.ErrSourceUnavailable, ref.URL, resp.StatusCode, string(body))
	}

	if resp.ContentLength > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: fetch %s: document of %d bytes exceeds the %d byte limit",
			domain.ErrSourceUnavailable, ref.URL, resp.ContentLength, MaxDocumentBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, ref.URL, err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: fetch %s: document exceeds the %d byte limit",
			domain.ErrSourceUnavailable, ref.URL, MaxDocumentBytes)
	}

	f.logger.Debug("Fetched source document",
		zap.String("url", ref.URL),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))

	return data, nil
}
