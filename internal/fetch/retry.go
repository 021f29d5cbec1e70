package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy retries transient failures with exponential backoff. Waits
// start at MinDelay and double up to MaxDelay.
type RetryPolicy struct {
	Attempts int
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultRetryPolicy makes three attempts waiting between 4 and 10 seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 3,
		MinDelay: 4 * time.Second,
		MaxDelay: 10 * time.Second,
	}
}

// backOff builds the wait schedule. Jitter is off so waits are predictable.
func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.MinDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         p.MaxDelay,
	}
	b.Reset()
	return b
}

// retry runs fn until it succeeds, fails permanently, or the attempts run
// out. The last error is returned.
func retry[T any](ctx context.Context, p RetryPolicy, logger *slog.Logger, fn func() (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)
	attempt := 0

	op := func() (T, error) {
		attempt++
		v, err := fn()
		if err != nil && !isRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("retrying after transient error",
			"attempt", attempt,
			"max_attempts", attempts,
			"delay", wait,
			"error", err,
		)
	}

	v, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(notify),
	)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return v, fmt.Errorf("retry cancelled: %w", err)
	}
	return v, err
}

// isRetryable reports whether err is a network failure, a 5xx or a 429.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var fetchErr *Error
	if errors.As(err, &fetchErr) && fetchErr.StatusCode != 0 {
		return fetchErr.StatusCode == http.StatusTooManyRequests || fetchErr.StatusCode >= 500
	}
	return true
}
