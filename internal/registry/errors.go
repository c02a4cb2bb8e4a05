package registry

import (
	"errors"
	"fmt"
)

// Common errors returned while loading registries.
var (
	// ErrNotFound indicates the registry document does not exist.
	ErrNotFound = errors.New("registry not found")

	// ErrRateLimited indicates the server refused the request for rate limiting.
	ErrRateLimited = errors.New("registry server rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error fetching registry")

	// ErrInvalidResponse indicates a response that could not be decoded.
	ErrInvalidResponse = errors.New("invalid registry response")

	// ErrEmptyCache indicates the offline cache has never been filled.
	ErrEmptyCache = errors.New("registry cache is empty")
)

// HTTPError represents a non-success HTTP status from the registry server.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("registry request failed (status %d): %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error indicates the registry was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429
	}
	return false
}
