package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates OPENAI_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrUnsupportedFormat indicates an unknown --format value.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrInvalidArgs indicates a flag or argument combination that cannot be honored.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrInvalidIndex indicates a fragment number outside the exercise.
	ErrInvalidIndex = errors.New("fragment number out of range")

	// ErrUnknownConfigKey indicates a config key the tool does not support.
	ErrUnknownConfigKey = errors.New("unknown config key")
)

// EnvOpenAIAPIKey is the environment variable holding the OpenAI API key.
const EnvOpenAIAPIKey = "OPENAI_API_KEY"
