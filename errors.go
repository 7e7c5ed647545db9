// Package streambench structured error types for better error handling
package streambench

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Configuration errors
	ErrTypeConfig ErrorType = iota
	// Memory errors
	ErrTypeMemory
	// Validation errors
	ErrTypeValidation
)

// BenchError represents a structured error with context
type BenchError struct {
	Type    ErrorType
	Op      string      // Operation that failed
	Message string      // Human-readable message
	Err     error       // Underlying error if any
	Context interface{} // Additional context
}

// Error implements the error interface
func (e *BenchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("streambench %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("streambench %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *BenchError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfig:
		return "Config"
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewConfigError creates a configuration error
func NewConfigError(op string, message string) error {
	return &BenchError{
		Type:    ErrTypeConfig,
		Op:      op,
		Message: message,
	}
}

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error with the failed check
// attached as context
func NewValidationError(op string, message string, context interface{}) error {
	return &BenchError{
		Type:    ErrTypeValidation,
		Op:      op,
		Message: message,
		Context: context,
	}
}

// Common pre-defined errors

var (
	// ErrTrialCount indicates too few trials to discard the first one
	ErrTrialCount = NewConfigError("Validate", "trials must be at least 2")

	// ErrArenaExhausted indicates an allocation past the arena capacity
	ErrArenaExhausted = NewMemoryError("Alloc", "arena exhausted", nil)
)

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var e *BenchError
	if errors.As(err, &e) {
		return e.Type == ErrTypeConfig
	}
	return false
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	var e *BenchError
	if errors.As(err, &e) {
		return e.Type == ErrTypeMemory
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var e *BenchError
	if errors.As(err, &e) {
		return e.Type == ErrTypeValidation
	}
	return false
}
