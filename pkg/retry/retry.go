// Package retry runs an operation a bounded number of times with
// exponentially increasing delays between attempts. After the last attempt
// the final error is returned to the caller unchanged.
package retry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config defines retry behavior with exponential backoff.
type Config struct {
	// MaxAttempts counts the first call. 3 means one call plus two retries.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// JitterFactor randomizes each delay by +/- the given fraction (0.0-1.0).
	JitterFactor float64
	// RetryIf decides whether an error is worth another attempt. Nil retries
	// every error.
	RetryIf func(error) bool
	// OnRetry is called before each wait with the failed attempt number
	// (starting at 1), its error and the upcoming delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig returns 3 attempts waiting 1s then 2s, with no jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

func (c *Config) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.InitialDelay
	eb.Multiplier = c.Multiplier
	eb.MaxInterval = c.MaxDelay
	eb.RandomizationFactor = c.JitterFactor
	eb.MaxElapsedTime = 0

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)
}

// Do executes fn until it succeeds, returns a permanent error, or the attempts
// are exhausted. Context cancellation during a wait returns ctx.Err().
func Do(ctx context.Context, cfg *Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for functions that return a value. On failure the
// value of the last attempt is returned alongside its error.
func DoWithResult[T any](ctx context.Context, cfg *Config, fn func() (T, error)) (T, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	attempt := 0
	op := func() (T, error) {
		attempt++
		v, err := fn()
		if err != nil && cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	var notify backoff.Notify
	if cfg.OnRetry != nil {
		notify = func(err error, d time.Duration) {
			cfg.OnRetry(attempt, err, d)
		}
	}

	return backoff.RetryNotifyWithData[T](op, cfg.backOff(ctx), notify)
}

// Permanent marks err so that Do stops retrying and returns err immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// IsTransient reports whether err looks like a temporary infrastructure
// fault: a dropped connection, a timeout or an overloaded dependency.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	type retryable interface {
		IsRetryable() bool
	}
	var r retryable
	if errors.As(err, &r) {
		return r.IsRetryable()
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"timeout",
	"timed out",
	"temporary failure",
	"too many connections",
	"too many clients",
	"deadlock",
	"server closed",
	"bad connection",
	"service unavailable",
	"slowdown",
}

//Personal.AI order the ending
