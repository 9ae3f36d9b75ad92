package cache

import (
	"context"
	"errors"
	"time"
)

// RetryDelay is the wait before the first retry of [RetryWithBackoff].
var RetryDelay = time.Second

// RetryableError marks a transient failure worth another attempt, such as a
// refused connection to Mongo or Redis.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation a fixed number of times, doubling the delay
// after each failed attempt.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// Do runs fn until it succeeds, returns an error not marked [Retryable], or
// runs out of attempts. The last error is returned unwrapped so callers see
// the underlying cause.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}

	var re *RetryableError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}

// RetryWithBackoff makes three attempts starting at [RetryDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Backoff{Attempts: 3, Delay: RetryDelay}.Do(ctx, fn)
}
