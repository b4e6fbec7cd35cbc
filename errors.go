package llmclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrInvalidAPIKey indicates the API key is missing, malformed, or unauthorized.
	ErrInvalidAPIKey = errors.New("llmclient: invalid API key")

	// ErrRateLimited indicates the provider's rate limit has been exceeded.
	ErrRateLimited = errors.New("llmclient: rate limit exceeded")

	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("llmclient: provider unavailable")

	// ErrMalformedResponse indicates a 2xx response whose body lacks the
	// expected choices[0].message.content shape.
	ErrMalformedResponse = errors.New("llmclient: malformed provider response")

	// ErrNotConfigured indicates no usable credential or transport exists.
	ErrNotConfigured = errors.New("llmclient: client not configured")
)

// ConfigError represents an unusable provider configuration.
// Callers typically handle it by taking a non-AI degradation path rather
// than surfacing it to users.
type ConfigError struct {
	Provider string // The provider kind from the config
	Reason   string // Human-readable explanation
	Err      error  // Wrapped error (usually ErrNotConfigured or ErrInvalidAPIKey)
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config for provider '%s': %s (%v)", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("config for provider '%s': %s", e.Provider, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProviderError represents an error from the underlying provider API.
type ProviderError struct {
	Provider   string // The provider kind
	StatusCode int    // HTTP status code (if applicable)
	Message    string // Error message from provider
	Retryable  bool   // Whether this error is potentially retryable
	Err        error  // Wrapped sentinel error (ErrRateLimited, ErrProviderUnavailable, etc.)
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a model reply that could not be parsed into the
// structured JSON the caller asked for.
type ExtractionError struct {
	Snippet string // Leading portion of the offending reply
	Err     error  // Wrapped parse error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response extraction failed: %v (reply starts with %q)", e.Err, e.Snippet)
	}
	return fmt.Sprintf("response extraction failed (reply starts with %q)", e.Snippet)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError represents a caller-contract violation (bad input), the
// one error class that propagates out of the orchestration services.
type ValidationError struct {
	Field  string // The input field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for '%s' (value: %v): %s", e.Field, e.Value, e.Reason)
}

// IsRetryable checks if an error is potentially retryable.
// Returns true for rate limits and temporary unavailability.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	if errors.Is(err, ErrProviderUnavailable) {
		return true
	}

	return false
}

// IsAuthError checks if an error is related to authentication.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidAPIKey) {
		return true
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		// HTTP 401/403 indicate auth issues
		return providerErr.StatusCode == 401 || providerErr.StatusCode == 403
	}

	return false
}
