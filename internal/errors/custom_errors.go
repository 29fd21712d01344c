package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	// Detail is the underlying cause shown to clients. Empty for errors
	// whose cause stays in the log.
	Detail           string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Sentinels. Wrap them with fmt.Errorf("...: %w", Err...) to keep context.
var (
	ErrMissingAddress    = errors.New("record has no address")
	ErrStoreUnavailable  = errors.New("record store unavailable")
	ErrNotFound          = errors.New("record not found")
	ErrInvalidID         = errors.New("invalid record id")
	ErrUpstreamGeocode   = errors.New("geocoder request failed")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrRateLimited       = errors.New("rate limited")
)

// Common error codes
const (
	ErrCodeMissingAddress    = "MISSING_ADDRESS"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeUpstreamGeocode   = "UPSTREAM_GEOCODE_FAILURE"
	ErrCodeInvalidParameters = "INVALID_PARAMETERS"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)
