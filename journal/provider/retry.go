package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// RetryPolicy bounds CallWithRetry.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first. Values < 1 mean 1.
	MaxAttempts int
	// Retryable decides whether a failed attempt is tried again. Nil means IsTimeout.
	Retryable func(error) bool
	// Backoff is the wait before attempt n+1 (index n-1). Missing entries mean no wait.
	Backoff []time.Duration
	// Sleep waits between attempts. Nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each retry with the 1-based attempt that failed.
	OnRetry func(attempt int, err error)
}

// ErrRetriesExhausted wraps the last error once every attempt failed with a retryable error.
var ErrRetriesExhausted = errors.New("retries exhausted")

// CallWithRetry runs fn until it succeeds, fails with a non-retryable error, or runs out of attempts.
func CallWithRetry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTimeout
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			return zero, err
		}
		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if d := backoffFor(p.Backoff, attempt); d > 0 {
			if err := sleep(ctx, d); err != nil {
				return zero, err
			}
		}
	}
	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, lastErr)
}

// IsTimeout reports whether err is a per-request deadline rather than any other failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func backoffFor(backoff []time.Duration, attempt int) time.Duration {
	if attempt-1 < len(backoff) {
		return backoff[attempt-1]
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
