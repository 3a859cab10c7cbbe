package fragment

import "errors"

var (
	// ErrInvalidPolicy indicates a Policy with out-of-range or inconsistent limits.
	ErrInvalidPolicy = errors.New("invalid fragment policy")

	// ErrRoundTrip indicates that joined fragments no longer match the source text.
	ErrRoundTrip = errors.New("fragments do not reproduce source text")
)
