package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_Error(t *testing.T) {
	cause := errors.New("connection refused")

	plain := NewTransportError("skyscanner", 0, "", cause)
	assert.Equal(t, "skyscanner: transport error: connection refused", plain.Error())

	withStatus := NewTransportError("serpapi", 429, `{"error":"rate limited"}`, cause)
	assert.Contains(t, withStatus.Error(), "status 429")
	assert.Equal(t, `{"error":"rate limited"}`, withStatus.Body)
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("token rejected")
	err := NewAuthError("amadeus", cause)

	assert.ErrorIs(t, err, cause)
}

func TestProviderError_Kinds(t *testing.T) {
	assert.Equal(t, ProviderErrorAuth, NewAuthError("amadeus", nil).Kind)
	assert.Equal(t, ProviderErrorTransport, NewTransportError("serpapi", 500, "", nil).Kind)
	assert.Equal(t, ProviderErrorParse, NewParseError("skyscanner", nil).Kind)
}

func TestIsProviderError(t *testing.T) {
	inner := NewParseError("serpapi", errors.New("unexpected shape"))
	wrapped := fmt.Errorf("search failed: %w", inner)

	pe, ok := IsProviderError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "serpapi", pe.Provider)
	assert.Equal(t, ProviderErrorParse, pe.Kind)

	_, ok = IsProviderError(errors.New("plain"))
	assert.False(t, ok)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrAllProvidersFailed, ErrInvalidRequest)

	wrapped := fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	assert.ErrorIs(t, wrapped, ErrInvalidRequest)
}
