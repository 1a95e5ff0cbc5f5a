package storage

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy retries an operation a fixed number of times with a constant
// delay. The last error is returned when every attempt fails.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// OnRetry, when set, is called after each failed attempt that will be retried.
	OnRetry func(attempt int, err error)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: time.Second}
}

// NewRetryPolicy builds a policy from configured values, keeping the
// defaults for anything unset.
func NewRetryPolicy(attempts int, delay time.Duration) RetryPolicy {
	p := DefaultRetryPolicy()
	if attempts >= 1 {
		p.MaxAttempts = attempts
	}
	if delay >= 0 {
		p.Delay = delay
	}
	return p
}

func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	var lastErr error
	err := backoff.RetryNotify(func() error {
		attempt++
		lastErr = op(ctx)
		return lastErr
	}, b, func(err error, _ time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
	})
	// cancellation mid-wait reports the remote failure, not ctx.Err()
	if err != nil && lastErr != nil && ctx.Err() != nil {
		return lastErr
	}
	return err
}
