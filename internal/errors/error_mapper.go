package errors

import (
	"errors"
	"net/http"
)

var mappings = []struct {
	target  error
	message string
	code    string
	status  int
	// expose copies the underlying error text into AppError.Detail
	expose bool
}{
	{ErrMissingAddress, MsgMissingAddress, ErrCodeMissingAddress, http.StatusBadRequest, false},
	{ErrInvalidParameters, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, false},
	{ErrRateLimited, MsgRateLimited, ErrCodeRateLimited, http.StatusTooManyRequests, false},
	{ErrNotFound, MsgNotFound, ErrCodeNotFound, http.StatusNotFound, false},
	{ErrInvalidID, MsgInvalidID, ErrCodeInvalidID, http.StatusInternalServerError, false},
	{ErrUpstreamGeocode, MsgUpstreamGeocode, ErrCodeUpstreamGeocode, http.StatusInternalServerError, true},
	{ErrStoreUnavailable, MsgStoreUnavailable, ErrCodeStoreUnavailable, http.StatusInternalServerError, true},
}

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			appErr := NewAppError(err.Error(), m.message, m.code, m.status, err)
			if m.expose {
				appErr.Detail = err.Error()
			}
			return appErr
		}
	}
	return NewAppError(err.Error(), MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
}
