package core

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for comparison using errors.Is()
// These are generic errors that can be wrapped with additional context
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("account already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPermissionDenied   = errors.New("permission denied")

	// Operation errors
	ErrOperationPending = errors.New("operation already in progress")
	ErrValidationFailed = errors.New("validation failed")

	// Cart and catalog errors
	ErrEmptyCart       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCatalog  = errors.New("invalid catalog document")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing required configuration")

	// Storage errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrStorageFailed    = errors.New("storage operation failed")
)

// StorefrontError provides structured error information with context
// It implements the error interface and supports error wrapping
type StorefrontError struct {
	Op      string // Operation that failed (e.g., "auth.Login")
	Kind    string // Error kind (e.g., "auth", "cart", "storage")
	ID      string // Optional ID of the entity involved
	Message string // Human-readable message
	Err     error  // Underlying error for wrapping
}

// Error returns the string representation of the error
func (e *StorefrontError) Error() string {
	if e.Op != "" && e.Err != nil {
		if e.ID != "" {
			return fmt.Sprintf("%s [%s]: %v", e.Op, e.ID, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

// Unwrap returns the underlying error for use with errors.Is/As
func (e *StorefrontError) Unwrap() error {
	return e.Err
}

// NewStorefrontError creates a new StorefrontError
func NewStorefrontError(op, kind string, err error) *StorefrontError {
	return &StorefrontError{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// IsAuthError checks if an error is authentication-related.
// These errors are recoverable by retrying with corrected input.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountExists) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrPermissionDenied)
}

// IsConfigurationError checks if an error is configuration-related
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrMissingConfiguration)
}

// IsStorageError checks if an error came from the durable state port.
// Reads that fail this way are treated as "no saved state"; writes surface
// a generic retry message to the user.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrStorageFailed)
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrLineNotFound)
}
