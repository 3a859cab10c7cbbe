package name

import "errors"

// ErrInvalid indicates an identifier that does not match the naming rules.
var ErrInvalid = errors.New("invalid name")
