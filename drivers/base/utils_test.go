package base

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryOnBackoff(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := RetryOnBackoff(context.Background(), 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error", func(t *testing.T) {
		calls := 0
		err := RetryOnBackoff(context.Background(), 2, time.Millisecond, func() error {
			calls++
			return errors.New("refused")
		})

		assert.EqualError(t, err, "refused")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := RetryOnBackoff(ctx, 5, time.Hour, func() error {
			calls++
			return errors.New("refused")
		})

		assert.EqualError(t, err, "refused")
		assert.Equal(t, 1, calls)
	})
}

func TestNewBase(t *testing.T) {
	assert.Equal(t, DefaultRetryCount, NewBase(0).RetryCount)
	assert.Equal(t, 5, NewBase(5).RetryCount)
	assert.Equal(t, DefaultRetrySleep, NewBase(5).RetrySleep)
}
