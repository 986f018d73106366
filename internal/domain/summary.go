package domain

import "time"

// DocumentSummary is the stored summary record for an ingested document.
// ChunkCount is how many chunks the document produced at ingest time.
type DocumentSummary struct {
	DocumentID   string
	CollectionID string
	DocumentName string
	Summary      string
	ChunkCount   int
	CreatedAt    time.Time
}
