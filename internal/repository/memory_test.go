package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("burst then deny", func(t *testing.T) {
		// Практически нулевой refill, чтобы проверить только burst
		limiter := NewMemoryRateLimiter(0.0001, 2)

		for i := 0; i < 2; i++ {
			allowed, err := limiter.Allow(ctx, "user:1")
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewMemoryRateLimiter(0.0001, 1)

		allowed, _ := limiter.Allow(ctx, "user:1")
		assert.True(t, allowed)

		allowed, _ = limiter.Allow(ctx, "user:2")
		assert.True(t, allowed)
	})

	t.Run("default burst", func(t *testing.T) {
		limiter := NewMemoryRateLimiter(0.0001, 0)
		assert.Equal(t, 5, limiter.burst)
	})
}
