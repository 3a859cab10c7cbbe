// Package name validates exercise identifiers and derives identifier
// suggestions from free-text titles.
package name

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier length limits and the maximum length of a suggestion.
const (
	MinLength     = 3
	MaxLength     = 50
	SuggestLength = 40
)

var allowedRe = regexp.MustCompile(`^[A-Za-z0-9_\-()]+$`)

// Validate checks that id is 3-50 characters of letters, digits, underscore,
// dash or parentheses. Failures wrap ErrInvalid.
func Validate(id string) error {
	err := validation.Validate(id,
		validation.Required,
		validation.Length(MinLength, MaxLength),
		validation.Match(allowedRe).Error("must contain only letters, digits, '_', '-', '(' or ')'"),
	)
	if err != nil {
		return fmt.Errorf("%q %v: %w", id, err, ErrInvalid)
	}
	return nil
}

// Suggest derives an identifier from title: lowercased, disallowed characters
// replaced by '_', repeated '_' collapsed, edge '_' trimmed, and cut to
// SuggestLength characters. The result may be shorter than MinLength.
func Suggest(title string) string {
	var b strings.Builder
	prevUnderscore := false
	// A Caser is stateful, so each call gets its own.
	for _, r := range cases.Lower(language.Und).String(title) {
		if !isAllowedLower(r) {
			r = '_'
		}
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(r)
	}

	s := strings.Trim(b.String(), "_")
	if len(s) > SuggestLength {
		s = s[:SuggestLength]
	}
	return s
}

func isAllowedLower(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '(', r == ')':
		return true
	}
	return false
}
