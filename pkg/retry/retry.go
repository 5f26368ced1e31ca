// Package retry wraps an operation with fixed-delay retries. It is generic
// over the operation's result and knows nothing about the callers' domains:
// the caller decides which errors warrant another attempt.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// ErrMaxRetries marks a failure where every allowed attempt ended in a
// retryable error. The last underlying error is wrapped alongside it.
var ErrMaxRetries = errors.New("max retries exceeded")

// Do invokes op until it succeeds or a non-retryable error occurs, waiting
// delay between attempts. op is invoked at most maxAttempts times.
func Do[T any](ctx context.Context, maxAttempts int, delay time.Duration, retryable func(error) bool, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		return zero, fmt.Errorf("retry: maxAttempts must be >= 1, got %d", maxAttempts)
	}

	var result T
	backoff := goretry.WithMaxRetries(uint64(maxAttempts-1), goretry.NewConstant(delay))

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		if opErr == nil {
			return nil
		}
		if retryable(opErr) {
			return goretry.RetryableError(opErr)
		}
		return opErr
	})
	if err != nil {
		if retryable(err) {
			return zero, fmt.Errorf("%w: %w", ErrMaxRetries, err)
		}
		return zero, err
	}
	return result, nil
}
