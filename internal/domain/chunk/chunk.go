package chunk

import (
	"fmt"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Chunk is one indexed passage of a document (immutable value object).
type Chunk struct {
	documentID   string
	collectionID string
	documentName string
	text         string
	index        int
	total        int
	page         int
}

// New validates and creates a Chunk. Page 0 means the source page is unknown.
func New(documentID, collectionID, documentName, text string, index, total, page int) (Chunk, error) {
	if documentID == "" {
		return Chunk{}, fmt.Errorf("%w: chunk document ID is required", domain.ErrValidation)
	}
	if text == "" {
		return Chunk{}, fmt.Errorf("%w: chunk text is required", domain.ErrValidation)
	}
	if index < 0 {
		return Chunk{}, fmt.Errorf("%w: chunk index must not be negative", domain.ErrValidation)
	}
	if total <= index {
		return Chunk{}, fmt.Errorf("%w: chunk total %d must exceed index %d", domain.ErrValidation, total, index)
	}
	if page < 0 {
		return Chunk{}, fmt.Errorf("%w: chunk page must not be negative", domain.ErrValidation)
	}

	return Chunk{
		documentID:   documentID,
		collectionID: collectionID,
		documentName: documentName,
		text:         text,
		index:        index,
		total:        total,
		page:         page,
	}, nil
}

// Reconstruct creates a Chunk without validation (storage hydration).
func Reconstruct(documentID, collectionID, documentName, text string, index, total, page int) Chunk {
	return Chunk{
		documentID:   documentID,
		collectionID: collectionID,
		documentName: documentName,
		text:         text,
		index:        index,
		total:        total,
		page:         page,
	}
}

// DocumentID returns the owning document identifier.
func (c Chunk) DocumentID() string { return c.documentID }

// CollectionID returns the owning collection identifier.
func (c Chunk) CollectionID() string { return c.collectionID }

// DocumentName returns the source document name.
func (c Chunk) DocumentName() string { return c.documentName }

// Text returns the passage text.
func (c Chunk) Text() string { return c.text }

// Index returns the zero-based position of the chunk within its document.
func (c Chunk) Index() int { return c.index }

// Total returns the chunk count of the owning document.
func (c Chunk) Total() int { return c.total }

// Page returns the source page number, 0 when unknown.
func (c Chunk) Page() int { return c.page }
