package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle provider unavailable: %v", e.Err)
	}
	return "oracle provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the model returned no usable text.
type ErrEmptyResponse struct {
	Err error
}

func (e *ErrEmptyResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("empty oracle response: %v", e.Err)
	}
	return "empty oracle response"
}

func (e *ErrEmptyResponse) Unwrap() error { return e.Err }
