package summary

import (
	"time"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// record is the stored JSON shape of one summary document.
type record struct {
	DocumentID   string    `json:"document_id"`
	CollectionID string    `json:"collection_id"`
	DocumentName string    `json:"document_name"`
	Summary      string    `json:"summary"`
	ChunkCount   int       `json:"chunk_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRecord(s domain.DocumentSummary) record {
	return record{
		DocumentID:   s.DocumentID,
		CollectionID: s.CollectionID,
		DocumentName: s.DocumentName,
		Summary:      s.Summary,
		ChunkCount:   s.ChunkCount,
		CreatedAt:    s.CreatedAt,
	}
}

func (r record) toDomain() domain.DocumentSummary {
	return domain.DocumentSummary{
		DocumentID:   r.DocumentID,
		CollectionID: r.CollectionID,
		DocumentName: r.DocumentName,
		Summary:      r.Summary,
		ChunkCount:   r.ChunkCount,
		CreatedAt:    r.CreatedAt,
	}
}
