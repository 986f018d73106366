// Package summary persists per-document summary records as JSON documents.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
)

// store is the consumer interface for summary persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// Repo reads and writes document summary records.
type Repo struct {
	store store
}

// New creates a summary repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores the summary record, overwriting any previous one for the
// document. A zero CreatedAt is stamped with the current time.
func (r *Repo) Save(ctx context.Context, s domain.DocumentSummary) error {
	if s.DocumentID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrValidation)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(toRecord(s))
	if err != nil {
		return fmt.Errorf("marshal summary %s: %w", s.DocumentID, err)
	}

	key := summaryKey(s.DocumentID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("%w: store summary %s: %w", domain.ErrPersistence, s.DocumentID, err)
	}
	return nil
}

// Get returns the summary record for a document.
func (r *Repo) Get(ctx context.Context, documentID string) (domain.DocumentSummary, error) {
	key := summaryKey(documentID)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.DocumentSummary{}, fmt.Errorf("%w: %s", domain.ErrSummaryNotFound, documentID)
		}
		return domain.DocumentSummary{}, fmt.Errorf("%w: get summary %s: %w", domain.ErrPersistence, documentID, err)
	}

	// JSON.GET with a "$" path wraps the document in an array.
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return domain.DocumentSummary{}, fmt.Errorf("%w: decode summary %s: %w", domain.ErrPersistence, documentID, err)
	}
	if len(records) == 0 {
		return domain.DocumentSummary{}, fmt.Errorf("%w: %s", domain.ErrSummaryNotFound, documentID)
	}

	return records[0].toDomain(), nil
}

// Delete removes the summary record. Deleting a missing record is not an error.
func (r *Repo) Delete(ctx context.Context, documentID string) error {
	if err := r.store.Del(ctx, summaryKey(documentID)); err != nil {
		return fmt.Errorf("%w: delete summary %s: %w", domain.ErrPersistence, documentID, err)
	}
	return nil
}

func summaryKey(documentID string) string {
	return domain.KeyPrefix + "summary:" + documentID
}
