package llm

import "errors"

// ErrEmptyResponse is returned when the model produced no text content.
var ErrEmptyResponse = errors.New("llm: response contained no text")
