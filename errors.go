package docdex

import "github.com/kailas-cloud/docdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation             = domain.ErrValidation
	ErrSourceUnavailable      = domain.ErrSourceUnavailable
	ErrParseFailure           = domain.ErrParseFailure
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrPersistence            = domain.ErrPersistence
	ErrJobNotFound            = domain.ErrJobNotFound
	ErrSummaryNotFound        = domain.ErrSummaryNotFound
)
