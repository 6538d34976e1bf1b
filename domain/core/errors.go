package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Baseline shape errors
	ErrInvalidBaseline  = errors.New("invalid baseline dataset")
	ErrMissingDayOffset = fmt.Errorf("%w: retention series missing day offset", ErrInvalidBaseline)
	ErrUnorderedOffsets = fmt.Errorf("%w: retention day offsets not strictly increasing", ErrInvalidBaseline)
	ErrUnknownSlice     = fmt.Errorf("%w: filter references unknown slice", ErrInvalidBaseline)
	ErrNegativeCount    = fmt.Errorf("%w: negative user count", ErrInvalidBaseline)

	// Request errors
	ErrInvalidRequest     = errors.New("invalid simulation request")
	ErrUnknownInitiative  = fmt.Errorf("%w: unknown initiative kind", ErrInvalidRequest)
	ErrExposureOutOfRange = fmt.Errorf("%w: exposure rate outside [0,100]", ErrInvalidRequest)

	// Storage errors
	ErrNotFound         = errors.New("resource not found")
	ErrBaselineNotFound = fmt.Errorf("%w: baseline", ErrNotFound)
)

// NewValidationError builds a field-scoped validation error so callers can
// identify the offending input before the simulation loop starts.
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", ErrInvalidRequest, field, reason)
}

// NewBaselineError builds a field-scoped baseline shape error.
func NewBaselineError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidBaseline, field, reason)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidBaseline) || errors.Is(err, ErrInvalidRequest)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
