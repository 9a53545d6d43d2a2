package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrSetNotFound indicates that the requested flashcard set does not exist.
	ErrSetNotFound = fmt.Errorf("%w: flashcard set", ErrNotFound)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a store failure with a client-visible message and a detail
// object describing the underlying database error.
type StoreError struct {
	Entity    string         // The entity type (e.g., "flashcard")
	Operation string         // The operation that failed (e.g., "create")
	Message   string         // Error message safe to show to clients
	Details   map[string]any // Structured detail (code, detail, hint, constraint)
	Err       error          // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// WithDetails sets the detail object and returns e for chaining.
// Empty values are dropped.
func (e *StoreError) WithDetails(details map[string]any) *StoreError {
	for k, v := range details {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if e.Details == nil {
			e.Details = make(map[string]any, len(details))
		}
		e.Details[k] = v
	}
	return e
}
