package crudex

import "github.com/kailas-cloud/crudex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrBadRequest       = domain.ErrBadRequest
	ErrValidationFailed = domain.ErrValidationFailed
	ErrNotFound         = domain.ErrNotFound
	ErrStorage          = domain.ErrStorage
	ErrInternal         = domain.ErrInternal
)

// ValidationError carries the offending fields of a rejected mutation.
// Use errors.As() to extract it.
type ValidationError = domain.ValidationError
