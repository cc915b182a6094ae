package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable reports a backend that could not be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so [RetryWithBackoff] tries again.
// Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// backoff is a doubling retry schedule.
type backoff struct {
	attempts int
	delay    time.Duration
}

var redisBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], the attempts run out, or ctx is done. Delays start at 100ms
// and double.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return redisBackoff.do(ctx, fn)
}

func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
