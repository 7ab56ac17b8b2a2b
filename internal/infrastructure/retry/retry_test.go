package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("upstream hiccup")

// fastConfig keeps backoff delays negligible so tests stay quick.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, DefaultConfig)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RecoversWithinBudget(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	}, fastConfig(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustionReturnsLastError(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return errTransient
	}, fastConfig(3))

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDo_ZeroAttemptsMeansOne(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, Config{})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetryIfStopsEarly(t *testing.T) {
	fatal := errors.New("bad credentials")
	calls := 0

	cfg := fastConfig(5).WithRetryIf(func(err error) bool {
		return errors.Is(err, errTransient)
	})
	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return errTransient
		}
		return fatal
	}, cfg)

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 2, calls, "the fatal error ends the loop immediately")
}

func TestDo_SkipPermanent(t *testing.T) {
	calls := 0

	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return errTransient
		}
		return NewPermanent(errors.New("404 from lookup"))
	}, fastConfig(5).WithRetryIf(SkipPermanent))

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 2, calls)
}

func TestDo_ContextEndsBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	}
	err := Do(ctx, func() error { return errTransient }, cfg)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, func() error {
		calls++
		return nil
	}, DefaultConfig)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDo_MaxDelayCapsBackoff(t *testing.T) {
	start := time.Now()

	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     60 * time.Millisecond,
		Multiplier:   10.0,
	}
	err := Do(context.Background(), func() error { return errTransient }, cfg)

	require.Error(t, err)
	// Four sleeps capped at 60ms each; uncapped they would take nearly a minute.
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	type airportPage struct {
		Codes []string
	}

	calls := 0
	page, err := DoWithResult(context.Background(), func() (airportPage, error) {
		calls++
		if calls < 2 {
			return airportPage{}, errTransient
		}
		return airportPage{Codes: []string{"CDG", "AUS"}}, nil
	}, fastConfig(3))

	require.NoError(t, err)
	assert.Equal(t, []string{"CDG", "AUS"}, page.Codes)
	assert.Equal(t, 2, calls)
}

func TestDoWithResult_LastValueOnExhaustion(t *testing.T) {
	result, err := DoWithResult(context.Background(), func() (string, error) {
		return "partial", errTransient
	}, fastConfig(3))

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, "partial", result)
}

func TestPermanent_WrapsAndUnwraps(t *testing.T) {
	inner := errors.New("validation failed")
	wrapped := NewPermanent(inner)

	assert.True(t, IsPermanent(wrapped))
	assert.Equal(t, "validation failed", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)
}

func TestPermanent_Degenerate(t *testing.T) {
	assert.Nil(t, NewPermanent(nil))
	assert.False(t, IsPermanent(nil))
	assert.False(t, IsPermanent(errTransient))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())
}

func TestConfig_Builders(t *testing.T) {
	cfg := DefaultConfig.
		WithMaxAttempts(5).
		WithInitialDelay(200 * time.Millisecond).
		WithMaxDelay(5 * time.Second).
		WithRetryIf(SkipPermanent)

	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.NotNil(t, cfg.RetryIf)
	assert.Nil(t, DefaultConfig.RetryIf, "builders must not mutate the preset")
}

func TestPresets(t *testing.T) {
	assert.Equal(t, 3, DefaultConfig.MaxAttempts)
	assert.Equal(t, 3, ProviderConfig.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, ProviderConfig.InitialDelay)
	assert.Equal(t, 5, AggressiveConfig.MaxAttempts)
	assert.Less(t, AggressiveConfig.InitialDelay, DefaultConfig.InitialDelay)
}
