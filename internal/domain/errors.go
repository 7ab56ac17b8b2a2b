package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the aggregation pipeline.
var (
	// ErrInvalidRequest marks client-caused validation failures. It is
	// raised before any provider is contacted.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAllProvidersFailed is returned when every provider failed, so no
	// data is available at all. It is distinct from a successful search
	// with zero matching offers.
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// ProviderErrorKind classifies a per-provider failure.
type ProviderErrorKind string

// Provider failure kinds. Each is fatal to its provider only and never
// propagates past the aggregator unless every provider failed.
const (
	// ProviderErrorAuth covers missing or rejected credentials.
	ProviderErrorAuth ProviderErrorKind = "auth"

	// ProviderErrorTransport covers network failures, timeouts, and
	// non-success HTTP statuses.
	ProviderErrorTransport ProviderErrorKind = "transport"

	// ProviderErrorParse covers malformed or unexpected payload shapes.
	ProviderErrorParse ProviderErrorKind = "parse"
)

// ProviderError wraps a failure from a single provider with its name, the
// failure kind, and (for transport failures) the provider's own HTTP status
// and error body so callers can distinguish provider-reported errors from
// transport-level ones.
type ProviderError struct {
	Provider   string
	Kind       ProviderErrorKind
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s error (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewAuthError marks a missing or rejected provider credential.
func NewAuthError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ProviderErrorAuth, Err: err}
}

// NewTransportError marks a network failure or non-success HTTP status.
// statusCode and body carry the provider's own response when available.
func NewTransportError(provider string, statusCode int, body string, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Kind:       ProviderErrorTransport,
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// NewParseError marks a malformed or unexpected provider payload.
func NewParseError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ProviderErrorParse, Err: err}
}

// IsProviderError extracts a ProviderError from an error chain.
func IsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
