package domain

import "fmt"

// DocumentRef identifies a source document for ingestion: where to fetch it,
// what to call it, and which collection it lands in. Subject is an optional
// contextual tag carried into chunk enhancement.
type DocumentRef struct {
	DocumentID   string
	CollectionID string
	URL          string
	Name         string
	Subject      string
}

// Validate checks that the ref points at a retrievable, nameable source.
func (r DocumentRef) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("%w: document URL is required", ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: document name is required", ErrValidation)
	}
	return nil
}
