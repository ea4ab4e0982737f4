package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how long startup waits for a backing service.
type RetryPolicy struct {
	Attempts        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// ConnectionError is returned once every attempt to reach a service failed.
type ConnectionError struct {
	Target   string
	Attempts uint
	Err      error
}

func (e ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s after %d attempts: %v", e.Target, e.Attempts, e.Err)
}

func (e ConnectionError) Unwrap() error {
	return e.Err
}

func withRetry[T any](ctx context.Context, target string, policy RetryPolicy, connect func() (T, error)) (T, error) {
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}

	attempt := uint(0)
	result, err := backoff.Retry(
		ctx,
		func() (T, error) {
			attempt++
			return connect()
		},
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     policy.InitialInterval,
			RandomizationFactor: 0,
			Multiplier:          2,
			MaxInterval:         policy.MaxInterval,
		}),
		backoff.WithMaxTries(policy.Attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn(
				"connection attempt failed",
				slog.String("target", target),
				slog.Uint64("attempt", uint64(attempt)),
				slog.Uint64("attempts", uint64(policy.Attempts)),
				slog.Duration("retry_in", next),
				slog.String("error", err.Error()),
				slog.String("module", "database"),
			)
		}),
	)
	if err != nil {
		var zero T
		return zero, ConnectionError{Target: target, Attempts: attempt, Err: err}
	}

	slog.Info(
		"connected",
		slog.String("target", target),
		slog.Uint64("attempt", uint64(attempt)),
		slog.String("module", "database"),
	)
	return result, nil
}
