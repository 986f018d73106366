package chunkindex

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/chunk"
)

// Hash field names of a chunk row.
const (
	fieldContent      = "__content"
	fieldVector       = "__vector"
	fieldDocumentID   = "document_id"
	fieldCollectionID = "collection_id"
	fieldDocumentName = "document_name"
	fieldChunkIndex   = "chunk_index"
	fieldTotalChunks  = "total_chunks"
	fieldPageNumber   = "page_number"
)

// searchReturnFields lists what KNN queries pull back per row. The raw
// __vector_score is consumed by the db layer into the entry score.
var searchReturnFields = []string{
	fieldContent,
	fieldDocumentID,
	fieldCollectionID,
	fieldDocumentName,
	fieldChunkIndex,
	fieldTotalChunks,
	fieldPageNumber,
	"__vector_score",
}

// chunkToHash converts a chunk and its vector to a map for HSET.
func chunkToHash(c chunk.Chunk, vector []float32) map[string]string {
	return map[string]string{
		fieldContent:      c.Text(),
		fieldVector:       vectorToBytes(vector),
		fieldDocumentID:   c.DocumentID(),
		fieldCollectionID: c.CollectionID(),
		fieldDocumentName: c.DocumentName(),
		fieldChunkIndex:   strconv.Itoa(c.Index()),
		fieldTotalChunks:  strconv.Itoa(c.Total()),
		fieldPageNumber:   strconv.Itoa(c.Page()),
	}
}

// parseSearchResults converts a db search result into domain results,
// preserving the store's descending-similarity order.
func parseSearchResults(sr *db.SearchResult) []domain.SearchResult {
	if sr == nil || sr.Total == 0 {
		return nil
	}
	results := make([]domain.SearchResult, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, resultFromEntry(entry))
	}
	return results
}

// resultFromEntry hydrates one search result from flat hash fields.
func resultFromEntry(e db.SearchEntry) domain.SearchResult {
	return domain.SearchResult{
		Content:      e.Fields[fieldContent],
		Score:        e.Score,
		DocumentID:   e.Fields[fieldDocumentID],
		CollectionID: e.Fields[fieldCollectionID],
		DocumentName: e.Fields[fieldDocumentName],
		ChunkIndex:   atoi(e.Fields[fieldChunkIndex]),
		TotalChunks:  atoi(e.Fields[fieldTotalChunks]),
		Page:         atoi(e.Fields[fieldPageNumber]),
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// vectorToBytes serializes a vector as the little-endian float32 blob the
// FT vector field expects.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
