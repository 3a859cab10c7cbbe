package fragment

import "strings"

// Stats describes a single fragment relative to a Policy.
type Stats struct {
	WordCount int  `json:"wordCount"`
	IsLong    bool `json:"isLong"`
	IsShort   bool `json:"isShort"`
	IsEmpty   bool `json:"isEmpty"`
	// CanSplit reports whether the fragment has an internal word boundary.
	CanSplit bool `json:"canSplit"`
}

// Validation summarizes a fragment list. It is guidance only; nothing is rejected.
type Validation struct {
	Total        int     `json:"total"`
	OptimalRange bool    `json:"optimalRange"`
	LongCount    int     `json:"longCount"`
	ShortCount   int     `json:"shortCount"`
	EmptyCount   int     `json:"emptyCount"`
	AverageWords float64 `json:"averageWords"`
}

// StatsFor computes Stats for one fragment.
func StatsFor(fragment string, p Policy) Stats {
	n := WordCount(fragment)
	return Stats{
		WordCount: n,
		IsLong:    n > p.Ceiling,
		IsShort:   n > 0 && n < p.Floor,
		IsEmpty:   strings.TrimSpace(fragment) == "",
		CanSplit:  n >= 2,
	}
}

// Validate computes the aggregate Validation for fragments.
func Validate(fragments []string, p Policy) Validation {
	v := Validation{Total: len(fragments)}
	v.OptimalRange = v.Total >= p.OptimalMin && v.Total <= p.OptimalMax

	words := 0
	for _, f := range fragments {
		s := StatsFor(f, p)
		words += s.WordCount
		switch {
		case s.IsEmpty:
			v.EmptyCount++
		case s.IsLong:
			v.LongCount++
		case s.IsShort:
			v.ShortCount++
		}
	}
	if v.Total > 0 {
		v.AverageWords = float64(words) / float64(v.Total)
	}
	return v
}
