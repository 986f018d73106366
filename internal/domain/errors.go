package domain

import "errors"

var (
	// ErrValidation signals rejected caller input.
	ErrValidation = errors.New("validation failed")
	// ErrSourceUnavailable signals that a document source could not be retrieved.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrParseFailure signals that retrieved bytes could not be parsed into text.
	ErrParseFailure = errors.New("parse failure")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrPersistence signals a vector store or cache store write/read failure.
	ErrPersistence = errors.New("persistence error")
	// ErrJobNotFound signals an unknown ingestion job identifier.
	ErrJobNotFound = errors.New("job not found")
	// ErrSummaryNotFound signals a missing document summary record.
	ErrSummaryNotFound = errors.New("summary not found")
)
