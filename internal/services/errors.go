package services

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError is a provider failure normalised to an HTTP status.
// StatusCode is 0 when the provider never answered (network failure,
// undecodable reply, empty choice list).
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *UpstreamError) BadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// AsUpstreamError returns the *UpstreamError in err's chain, wrapping any
// other error as an unknown-status failure.
func AsUpstreamError(err error) *UpstreamError {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}
