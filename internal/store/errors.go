package store

import "errors"

// ErrNotFound indicates no exercise exists under the requested name.
var ErrNotFound = errors.New("exercise not found")

// ErrOpen indicates the database could not be opened or initialized.
var ErrOpen = errors.New("cannot open exercise store")
