package config

import "errors"

var (
	// ErrInvalidKey indicates a key that cannot be stored in the config file.
	ErrInvalidKey = errors.New("invalid config key")
	// ErrInvalidSyntax indicates a config line without '='.
	ErrInvalidSyntax = errors.New("invalid config syntax")
	// ErrNotDirectory indicates output-dir points at a regular file.
	ErrNotDirectory = errors.New("path is not a directory")
	// ErrNotWritable indicates output-dir cannot be written to.
	ErrNotWritable = errors.New("directory is not writable")
)
