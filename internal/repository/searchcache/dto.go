package searchcache

import "github.com/kailas-cloud/docdex/internal/domain"

// resultRecord is the stored JSON shape of one cached search result.
type resultRecord struct {
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	DocumentID   string  `json:"document_id"`
	CollectionID string  `json:"collection_id"`
	DocumentName string  `json:"document_name"`
	ChunkIndex   int     `json:"chunk_index"`
	TotalChunks  int     `json:"total_chunks"`
	Page         int     `json:"page_number"`
}

func toRecords(results []domain.SearchResult) []resultRecord {
	records := make([]resultRecord, len(results))
	for i, r := range results {
		records[i] = resultRecord{
			Content:      r.Content,
			Score:        r.Score,
			DocumentID:   r.DocumentID,
			CollectionID: r.CollectionID,
			DocumentName: r.DocumentName,
			ChunkIndex:   r.ChunkIndex,
			TotalChunks:  r.TotalChunks,
			Page:         r.Page,
		}
	}
	return records
}

func toDomainResults(records []resultRecord) []domain.SearchResult {
	results := make([]domain.SearchResult, len(records))
	for i, rec := range records {
		results[i] = domain.SearchResult{
			Content:      rec.Content,
			Score:        rec.Score,
			DocumentID:   rec.DocumentID,
			CollectionID: rec.CollectionID,
			DocumentName: rec.DocumentName,
			ChunkIndex:   rec.ChunkIndex,
			TotalChunks:  rec.TotalChunks,
			Page:         rec.Page,
		}
	}
	return results
}
