package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrEmptyResponse       = errors.New("empty model response")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrMalformedResponse   = errors.New("malformed model response")
	ErrScrapeFailed        = errors.New("blog scrape failed")
	ErrDatabaseError       = errors.New("database error")
)

// MalformedResponseError is returned when extraction and repair could not turn
// model output into parseable JSON. Raw carries the offending text for
// diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
