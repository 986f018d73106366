package domain

import (
	"fmt"
	"strings"
)

// DefaultSearchLimit caps result count when the caller does not specify one.
const DefaultSearchLimit = 5

// SearchQuery is a scoped similarity search request. Subject and Topic feed
// query enhancement and may be empty.
type SearchQuery struct {
	Text    string
	Subject string
	Topic   string
	Scope   Scope
	Limit   int
}

// Validate rejects empty query text and negative limits.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: query text is required", ErrValidation)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrValidation)
	}
	return nil
}

// WithDefaults returns a copy with the default limit applied.
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	return q
}

// Enhanced returns the query text prefixed with contextual tags, the same
// transformation stored chunks went through at indexing time.
func (q SearchQuery) Enhanced() string {
	return EnhanceQuery(q.Text, q.Subject, q.Topic)
}

// SearchResult is one scored passage returned from the similarity index.
// Score is cosine similarity, higher is more relevant.
type SearchResult struct {
	Content      string
	Score        float64
	DocumentID   string
	CollectionID string
	DocumentName string
	ChunkIndex   int
	TotalChunks  int
	Page         int
}
