package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// ConfigInvalid builds a configuration error
func ConfigInvalid(message string) *AppError {
	return &AppError{
		Code:    "CONFIG_INVALID",
		Message: message,
	}
}

// StorageFailed wraps a storage-layer failure
func StorageFailed(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    "STORAGE_FAILED",
		Message: message,
		Cause:   err,
	}
}
