// Package fragment holds the fragment policy (word-count limits) and the pure
// functions computing per-fragment stats, aggregate validation, round-trip
// checks, and persistence records over a fragment list.
package fragment

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default policy values.
const (
	DefaultCeiling         = 20
	DefaultFloor           = 2
	DefaultMinWords        = 20
	DefaultMaxWords        = 1500
	DefaultMaxDepth        = 10
	DefaultOptimalMin      = 15
	DefaultOptimalMax      = 25
	DefaultHistoryCapacity = 50
)

// Policy groups the tunable limits used by segmentation, stats and editing.
type Policy struct {
	// Ceiling is the maximum word count of a fragment before it is "long".
	Ceiling int `yaml:"ceiling"`
	// Floor is the word count under which a non-empty fragment is "short".
	Floor int `yaml:"floor"`
	// MinWords and MaxWords bound the raw input accepted for segmentation.
	MinWords int `yaml:"min_words"`
	MaxWords int `yaml:"max_words"`
	// MaxDepth caps segmenter recursion; deeper spans are returned unsplit.
	MaxDepth int `yaml:"max_depth"`
	// OptimalMin and OptimalMax define the guidance band for the fragment count.
	OptimalMin int `yaml:"optimal_min"`
	OptimalMax int `yaml:"optimal_max"`
	// HistoryCapacity is the number of snapshots an editor keeps.
	HistoryCapacity int `yaml:"history_capacity"`
}

// DefaultPolicy returns the default limits.
func DefaultPolicy() Policy {
	return Policy{
		Ceiling:         DefaultCeiling,
		Floor:           DefaultFloor,
		MinWords:        DefaultMinWords,
		MaxWords:        DefaultMaxWords,
		MaxDepth:        DefaultMaxDepth,
		OptimalMin:      DefaultOptimalMin,
		OptimalMax:      DefaultOptimalMax,
		HistoryCapacity: DefaultHistoryCapacity,
	}
}

// Validate checks that every limit is usable and that paired limits are ordered.
func (p *Policy) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Ceiling, validation.Required, validation.Min(1)),
		validation.Field(&p.Floor, validation.Min(0), validation.Max(p.Ceiling-1)),
		validation.Field(&p.MinWords, validation.Required, validation.Min(1)),
		validation.Field(&p.MaxWords, validation.Required, validation.Min(p.MinWords)),
		validation.Field(&p.MaxDepth, validation.Min(0)),
		validation.Field(&p.OptimalMin, validation.Required, validation.Min(1)),
		validation.Field(&p.OptimalMax, validation.Required, validation.Min(p.OptimalMin)),
		validation.Field(&p.HistoryCapacity, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return nil
}
