package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrInputBounds indicates the input word count is outside the accepted range.
	ErrInputBounds = errors.New("input word count out of bounds")

	// ErrInputTooShort indicates fewer words than the policy minimum.
	ErrInputTooShort = fmt.Errorf("input too short: %w", ErrInputBounds)

	// ErrInputTooLong indicates more words than the policy maximum.
	ErrInputTooLong = fmt.Errorf("input too long: %w", ErrInputBounds)
)

// BoundsError is returned by Segment when the input is rejected before segmentation.
type BoundsError struct {
	Words int
	Min   int
	Max   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: %d words (accepted %d-%d)", e.Unwrap(), e.Words, e.Min, e.Max)
}

// Unwrap returns ErrInputTooShort or ErrInputTooLong, both of which wrap ErrInputBounds.
func (e *BoundsError) Unwrap() error {
	if e.Words < e.Min {
		return ErrInputTooShort
	}
	return ErrInputTooLong
}
