package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Policy describes a bounded exponential retry.
// The zero Retryable predicate retries every error.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	Retryable       func(error) bool

	// NewTimer replaces the wall-clock timer used between attempts (tests).
	NewTimer func() backoff.Timer
}

// DefaultPolicy is 3 attempts with 2s, 4s, 8s... waits on transient errors only
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		Multiplier:      2,
		MaxInterval:     time.Minute,
		Retryable:       IsTransient,
	}
}

// ExhaustedError is returned when every attempt failed with a retryable error
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("max attempts (%d) exceeded: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Operation is one attempt; attempt starts at 1
type Operation func(ctx context.Context, attempt int) error

// Notify is called before each wait with the failed attempt's error
type Notify func(attempt int, err error, wait time.Duration)

// Do runs op until it succeeds, returns a non-retryable error, the attempts are
// used up (*ExhaustedError) or ctx is done. It returns the number of attempts made.
func (p Policy) Do(ctx context.Context, op Operation, notify Notify) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	if p.Multiplier > 0 {
		bo.Multiplier = p.Multiplier
	}
	if p.MaxInterval > 0 {
		bo.MaxInterval = p.MaxInterval
	}
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx)

	attempts := 0
	var lastErr error
	operation := func() error {
		attempts++
		err := op(ctx, attempts)
		if err == nil {
			return nil
		}
		lastErr = err
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempts, err, wait)
		}
	}

	var timer backoff.Timer
	if p.NewTimer != nil {
		timer = p.NewTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, b, onRetry, timer)
	if err == nil {
		return attempts, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if lastErr != nil {
			return attempts, fmt.Errorf("%w (last error: %v)", ctxErr, lastErr)
		}
		return attempts, ctxErr
	}
	if attempts >= maxAttempts && (p.Retryable == nil || p.Retryable(err)) {
		return attempts, &ExhaustedError{Attempts: attempts, Err: err}
	}
	return attempts, err
}
