package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsAfterRetries(t *testing.T) {
	cfg := Config{MaxRetries: 5, InitialBackoff: time.Millisecond}

	called := 0
	err := Do(context.Background(), cfg, func() error {
		called++
		if called < 3 {
			return errors.New("temporary")
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, called)
}

func TestDoExhaustsRetries(t *testing.T) {
	cfg := Config{MaxRetries: 3, InitialBackoff: time.Millisecond}

	persistent := errors.New("persistent")
	called := 0
	err := Do(context.Background(), cfg, func() error {
		called++
		return persistent
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 3, called)
	assert.ErrorIs(t, err, persistent)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	cfg := Config{MaxRetries: 5, InitialBackoff: time.Millisecond}

	fatal := errors.New("fatal")
	called := 0
	err := Do(context.Background(), cfg, func() error {
		called++
		if called == 2 {
			return fatal
		}
		return errors.New("transient")
	}, func(err error) bool {
		return !errors.Is(err, fatal)
	})

	require.Error(t, err)
	assert.Equal(t, 2, called)
	assert.ErrorIs(t, err, fatal)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{MaxRetries: 10, InitialBackoff: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	called := 0
	err := Do(ctx, cfg, func() error {
		called++
		cancel()
		return errors.New("always")
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, called)
}

func TestCalculateBackoff(t *testing.T) {
	cfg := Config{InitialBackoff: 10 * time.Millisecond, MaxBackoff: 50 * time.Millisecond, MaxRetries: 5}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 10 * time.Millisecond},
		{2, 20 * time.Millisecond},
		{3, 40 * time.Millisecond},
		{4, 50 * time.Millisecond}, // capped
		{5, 50 * time.Millisecond}, // capped
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, calculateBackoff(cfg, tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestCalculateBackoffJitter(t *testing.T) {
	cfg := Config{InitialBackoff: 100 * time.Millisecond, MaxRetries: 5, Jitter: 0.5}

	// attempt 2: base 200ms + 200*0.5*2/5 = 240ms
	assert.Equal(t, 240*time.Millisecond, calculateBackoff(cfg, 2))
}
