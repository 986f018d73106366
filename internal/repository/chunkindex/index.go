package chunkindex

import (
	"fmt"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
)

// HNSW build parameters for the chunk vector field.
const (
	defaultHNSWM           = 32
	defaultHNSWEFConstruct = 400
)

func indexName() string {
	return domain.KeyPrefix + "chunks:idx"
}

func rowPrefix() string {
	return domain.KeyPrefix + "chunk:"
}

func chunkKey(documentID string, index int) string {
	return fmt.Sprintf("%schunk:%s:%d", domain.KeyPrefix, documentID, index)
}

func chunkKeyPattern(documentID string) string {
	return fmt.Sprintf("%schunk:%s:*", domain.KeyPrefix, documentID)
}

// buildIndex defines the single FT index all chunk rows share. The vector
// field is declared AS "vector" because KNN queries address it by alias.
func buildIndex(vectorDim int) (*db.IndexDefinition, error) {
	return db.NewIndex(indexName()).
		Prefix(rowPrefix()).
		Tag(fieldDocumentID).
		Tag(fieldCollectionID).
		Numeric(fieldChunkIndex).
		Numeric(fieldTotalChunks).
		Numeric(fieldPageNumber).
		VectorHNSW(fieldVector, vectorDim, db.DistanceCosine, defaultHNSWM, defaultHNSWEFConstruct).
		As("vector").
		Build()
}
