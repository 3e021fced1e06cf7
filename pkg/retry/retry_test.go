package retry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelay_Execute(t *testing.T) {
	retryable := errors.New("retryable")
	terminal := errors.New("terminal")

	classify := func(err error) bool { return errors.Is(err, retryable) }

	t.Run("succeeds without retrying", func(t *testing.T) {
		policy := NewFixedDelay(&Config{MaxAttempts: 3, RetryIf: classify})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		policy := NewFixedDelay(&Config{MaxAttempts: 5, RetryIf: classify})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			if calls < 3 {
				return retryable
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("terminal error returned immediately", func(t *testing.T) {
		policy := NewFixedDelay(&Config{MaxAttempts: 5, RetryIf: classify})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return terminal
		})

		assert.ErrorIs(t, err, terminal)
		assert.False(t, IsMaxRetriesExceeded(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausting attempts wraps the last error", func(t *testing.T) {
		policy := NewFixedDelay(&Config{MaxAttempts: 4, RetryIf: classify})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return retryable
		})

		assert.True(t, IsMaxRetriesExceeded(err))
		assert.ErrorIs(t, err, retryable)
		assert.Equal(t, 4, calls)
	})

	t.Run("nil config applies defaults", func(t *testing.T) {
		policy := NewFixedDelay(nil)

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return errors.New("connection refused")
		})

		assert.True(t, IsMaxRetriesExceeded(err))
		assert.Equal(t, 3, calls)
	})
}

func TestExponentialBackoff_Execute(t *testing.T) {
	t.Run("transient heuristic used when no classifier given", func(t *testing.T) {
		policy := NewExponentialBackoff(&Config{
			MaxAttempts: 3,
			Multiplier:  2.0,
		})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return errors.New("permission denied")
		})

		assert.Error(t, err)
		assert.False(t, IsMaxRetriesExceeded(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("custom classifier overrides the heuristic", func(t *testing.T) {
		policy := NewExponentialBackoff(&Config{
			MaxAttempts: 2,
			Multiplier:  2.0,
			RetryIf:     func(error) bool { return true },
		})

		calls := 0
		err := policy.Execute(func() error {
			calls++
			return errors.New("permission denied")
		})

		assert.True(t, IsMaxRetriesExceeded(err))
		assert.Equal(t, 2, calls)
	})
}
