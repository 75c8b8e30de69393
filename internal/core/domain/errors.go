package domain

import "errors"

// ============================================================================
// Catalog Errors
// ============================================================================

// Not found errors
var (
	ErrAreaNotFound     = errors.New("area not found")
	ErrBusinessNotFound = errors.New("business type not found")
)

// Validation errors
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ============================================================================
// Analysis Errors
// ============================================================================

// Not found errors
var (
	ErrRunNotFound = errors.New("analysis run not found")
)

// Validation errors
var (
	ErrNegativeFactor  = errors.New("market factors must be non-negative")
	ErrNegativeEpsilon = errors.New("epsilon must be non-negative")
)

// Availability errors
var (
	ErrHistoryDisabled = errors.New("analysis history is disabled")
)
