package ai

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("empty model response")
)

// ModelError wraps any failure of a hosted-model call: network error,
// timeout, bad status or schema-validation failure. It is not retried by
// callers; the only resilience above it is the quality fallback.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}
