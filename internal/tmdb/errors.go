package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for TMDB API responses.
var (
	// ErrNotFound is returned when a movie doesn't exist in TMDB.
	// Only detail lookups report it; a 404 on search is an APIError.
	ErrNotFound = errors.New("movie not found")

	// ErrMissingAPIKey is returned by NewClient when no credential is set.
	ErrMissingAPIKey = errors.New("TMDB API key is required")
)

// APIError is a non-2xx response from TMDB other than a detail 404.
// Message carries the upstream status_message when parseable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a transport-level failure reaching TMDB (DNS,
// connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
