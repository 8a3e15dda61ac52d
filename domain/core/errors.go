package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors. These abort an entire call before any
	// sample is processed.
	ErrMarkerLengthMismatch = errors.New("marker index vectors must be of the same length")
	ErrMarkerOutOfRange     = errors.New("marker index out of range")
	ErrUsedIndexOutOfRange  = errors.New("used feature index out of range")
	ErrSampleOutOfRange     = errors.New("sample index out of range")
	ErrInvalidIterations    = errors.New("iteration counts must be positive")
	ErrInvalidMinPairs      = errors.New("minimum pair count must be positive")
	ErrEmptyInput           = errors.New("input vector is empty")

	// Data access errors
	ErrColumnFetchFailed = errors.New("failed to fetch sample column")
	ErrDatasetNotFound   = errors.New("dataset not found")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewRangeError(base error, position, value, limit int) error {
	return fmt.Errorf("%w: entry %d has value %d, want [0, %d)", base, position, value, limit)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMarkerLengthMismatch) ||
		errors.Is(err, ErrMarkerOutOfRange) ||
		errors.Is(err, ErrUsedIndexOutOfRange) ||
		errors.Is(err, ErrSampleOutOfRange) ||
		errors.Is(err, ErrInvalidIterations) ||
		errors.Is(err, ErrInvalidMinPairs) ||
		errors.Is(err, ErrEmptyInput)
}
