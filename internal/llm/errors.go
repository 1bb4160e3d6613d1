package llm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingKey is returned when a provider that needs an API key is built
// without one.
var ErrMissingKey = errors.New("API key is required")

// ErrRateLimit indicates the provider returned a rate limit or quota error (429).
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport, auth and server failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// Kind classifies err for logs and the request history.
func Kind(err error) string {
	var (
		rate      *ErrRateLimit
		invalid   *ErrInvalidResponse
		down      *ErrProviderUnavailable
		truncated *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingKey):
		return "missing_key"
	case errors.As(err, &rate):
		return "rate_limit"
	case errors.As(err, &invalid):
		return "invalid_response"
	case errors.As(err, &truncated):
		return "max_tokens"
	case errors.As(err, &down):
		return "unavailable"
	default:
		return "other"
	}
}
