package punctuate

import "errors"

var (
	// ErrContentChanged indicates the model altered, added or dropped words
	// instead of only restoring punctuation and capitalization.
	ErrContentChanged = errors.New("punctuation changed the words")
	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty punctuation response")
)
