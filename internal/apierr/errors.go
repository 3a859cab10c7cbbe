// Package apierr provides shared error sentinels, classification of
// OpenAI API errors into those sentinels, and retry with exponential backoff.
//
// Callers check with errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import "errors"

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates the API rate limit was exceeded (temporary, retryable).
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrQuotaExceeded indicates the API quota was exceeded (billing issue, not retryable).
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrTimeout indicates a request timed out (temporary, retryable).
	ErrTimeout = errors.New("request timeout")
	// ErrServer indicates a transient server-side failure (5xx, retryable).
	ErrServer = errors.New("server error")
	// ErrAuthFailed indicates API authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")
	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")
)
