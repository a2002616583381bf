// Package retrying wraps generation calls with the backoff policy used
// across the service: a small fixed number of attempts with exponential
// delay, honoring context cancellation between attempts.
package retrying

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// Attempts is how many times a generation call runs before its last
	// error is surfaced.
	Attempts = 3

	minDelay = 2 * time.Second
	maxDelay = 10 * time.Second
)

func options(ctx context.Context, extra ...retry.Option) []retry.Option {
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(Attempts),
		retry.Delay(minDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
	return append(opts, extra...)
}

// Do runs fn up to Attempts times. Every error is considered retryable;
// a context cancellation stops the loop immediately.
func Do(ctx context.Context, fn func() error, extra ...retry.Option) error {
	return retry.Do(fn, options(ctx, extra...)...)
}

// DoWithData is Do for calls that produce a value alongside the error.
func DoWithData[T any](ctx context.Context, fn func() (T, error), extra ...retry.Option) (T, error) {
	return retry.DoWithData(fn, options(ctx, extra...)...)
}
