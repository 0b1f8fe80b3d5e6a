// Package retry provides exponential backoff with optional jitter and
// context cancellation support.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Config defines the retry behavior. The zero value is not usable;
// MaxRetries and InitialBackoff must be set.
type Config struct {
	// MaxRetries is the maximum number of attempts.
	MaxRetries int

	// InitialBackoff is the base backoff duration. Each retry multiplies
	// it by 2^(attempt-1).
	InitialBackoff time.Duration

	// MaxBackoff caps the backoff duration. Zero means no cap.
	MaxBackoff time.Duration

	// Jitter adds randomness to backoff (0.0 to 1.0), growing linearly
	// with the attempt number. Zero means no jitter.
	Jitter float64
}

// ShouldRetryFunc decides whether an error should trigger another
// attempt. A nil function retries every error.
type ShouldRetryFunc func(error) bool

// Do executes fn with exponential backoff, at most cfg.MaxRetries times.
// A nil return from fn stops immediately; a non-retryable error is
// returned as-is; exhausting the attempts wraps the last error. If the
// context is canceled during a backoff period, Do returns the context
// error.
func Do(ctx context.Context, cfg Config, fn func() error, shouldRetry ShouldRetryFunc) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(calculateBackoff(cfg, attempt)):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("failed after %d retries: %w", cfg.MaxRetries, lastErr)
}

func calculateBackoff(cfg Config, attempt int) time.Duration {
	multiplier := math.Pow(2, float64(attempt-1))
	backoff := time.Duration(multiplier * float64(cfg.InitialBackoff))

	if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
		backoff = cfg.MaxBackoff
	}
	if cfg.Jitter > 0 {
		backoff += time.Duration(float64(backoff) * cfg.Jitter * float64(attempt) / float64(cfg.MaxRetries))
	}
	return backoff
}
