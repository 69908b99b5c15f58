package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration signals invalid or missing configuration (credential, dimension).
	ErrConfiguration = errors.New("configuration error")
	// ErrProvisioning signals an index create/delete failure.
	ErrProvisioning = errors.New("index provisioning failed")
	// ErrValidation signals malformed request input.
	ErrValidation = errors.New("validation failed")
	// ErrUpsert signals a failed batch upsert.
	ErrUpsert = errors.New("batch upsert failed")
	// ErrNotReady signals that a required dependency is not initialized yet.
	ErrNotReady = errors.New("service not ready")
	// ErrStoreUnavailable signals that the vector store is unreachable or rejected a call.
	ErrStoreUnavailable = errors.New("vector store unavailable")
	// ErrTimeout signals that an outbound call exceeded its deadline.
	// Distinct from ErrStoreUnavailable so callers know a retry may duplicate effects.
	ErrTimeout = errors.New("operation timed out")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// ValidationError wraps ErrValidation with the offending field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for a named field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UpsertError wraps ErrUpsert with the 1-indexed batch that failed.
type UpsertError struct {
	Batch int
	Err   error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("%s: batch %d: %v", ErrUpsert.Error(), e.Batch, e.Err)
}

func (e *UpsertError) Unwrap() error { return ErrUpsert }

// NewUpsertError creates an upsert error for a failed batch.
func NewUpsertError(batch int, err error) error {
	return &UpsertError{Batch: batch, Err: err}
}
