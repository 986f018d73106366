// Package searchcache stores recent scored search results keyed by the
// enhanced query and its scope, so repeated questions skip embedding and
// KNN entirely. Entries are wiped when documents in the scope change.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
)

// DefaultTTL is how long cached search results live.
const DefaultTTL = 10 * time.Minute

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	DelMulti(ctx context.Context, keys []string) (int64, error)
}

// Cache is a short-lived result cache. Every failure degrades to a miss:
// an unreachable store never fails a search.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a result cache. ttl <= 0 falls back to DefaultTTL.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns cached results for the query/limit/scope triple. An empty
// cached list counts as a miss so transiently empty answers are retried.
func (c *Cache) Get(ctx context.Context, enhancedQuery string, k int, scope domain.Scope) ([]domain.SearchResult, bool) {
	key := cacheKey(enhancedQuery, k, scope)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search results", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}

	var records []resultRecord
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("Failed to parse cached search results", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return nil, false
	}
	if len(records) == 0 {
		c.incCache("miss")
		return nil, false
	}

	c.incCache("hit")
	return toDomainResults(records), true
}

// Put caches results for the query/limit/scope triple. Failures are logged only.
func (c *Cache) Put(ctx context.Context, enhancedQuery string, k int, scope domain.Scope, results []domain.SearchResult) {
	key := cacheKey(enhancedQuery, k, scope)

	data, err := json.Marshal(toRecords(results))
	if err != nil {
		c.logger.Warn("Failed to encode search results for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache search results", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCollection removes everything cached for a collection: the
// collection info and document-list keys downstream consumers maintain,
// plus all search results scoped to it. Fire-and-forget, returns the
// number of keys removed.
func (c *Cache) InvalidateCollection(ctx context.Context, collectionID string) int64 {
	keys := []string{
		domain.KeyPrefix + "collection:" + collectionID,
		domain.KeyPrefix + "collection_docs:" + collectionID,
	}
	keys = append(keys, c.scanKeys(ctx, searchKeyPattern(collectionID))...)
	return c.deleteKeys(ctx, keys, zap.String("collection_id", collectionID))
}

// InvalidateDocument removes cached search results scoped to one document.
func (c *Cache) InvalidateDocument(ctx context.Context, documentID string) int64 {
	keys := c.scanKeys(ctx, searchKeyPattern(documentID))
	return c.deleteKeys(ctx, keys, zap.String("document_id", documentID))
}

func (c *Cache) scanKeys(ctx context.Context, pattern string) []string {
	keys, err := c.store.Scan(ctx, pattern)
	if err != nil {
		c.logger.Warn("Failed to scan cache keys", zap.String("pattern", pattern), zap.Error(err))
		return nil
	}
	return keys
}

func (c *Cache) deleteKeys(ctx context.Context, keys []string, scopeField zap.Field) int64 {
	if len(keys) == 0 {
		return 0
	}

	n, err := c.store.DelMulti(ctx, keys)
	if err != nil {
		c.logger.Warn("Failed to invalidate cache entries", scopeField, zap.Error(err))
		return 0
	}

	c.logger.Info("Invalidated cache entries", scopeField, zap.Int64("deleted", n))
	return n
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(enhancedQuery string, k int, scope domain.Scope) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", enhancedQuery, k)))
	return fmt.Sprintf("%ssearch:%s:%s", domain.KeyPrefix, hex.EncodeToString(h[:]), scope.CacheID())
}

func searchKeyPattern(scopeID string) string {
	return domain.KeyPrefix + "search:*:" + scopeID
}
