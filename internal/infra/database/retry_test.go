package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = RetryPolicy{
	Attempts:        3,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := withRetry(context.Background(), "test", fastPolicy, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection refused")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	cause := errors.New("connection refused")
	_, err := withRetry(context.Background(), "mongodb", fastPolicy, func() (int, error) {
		calls++
		return 0, cause
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var connErr ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "mongodb", connErr.Target)
	assert.Equal(t, uint(3), connErr.Attempts)
	assert.ErrorIs(t, err, cause)
}

func TestWithRetryZeroAttemptsTriesOnce(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), "test", RetryPolicy{}, func() (int, error) {
		calls++
		return 0, errors.New("down")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
