package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlink-go/internal/ratelimit"
	"github.com/serroba/shortlink-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorStore struct {
	err error
}

func (s *errorStore) Record(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 0, s.err
}

func TestLimiter_Allow(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 3},
		})

		for i := 0; i < 3; i++ {
			allowed, exceeded, err := limiter.Allow(context.Background(), "client", nil)

			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Nil(t, exceeded)
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 2},
		})

		for i := 0; i < 2; i++ {
			_, _, err := limiter.Allow(context.Background(), "client", nil)
			require.NoError(t, err)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client", nil)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, int64(3), exceeded.Count)
		assert.Equal(t, int64(2), exceeded.Config.Max)
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 1},
		})

		_, _, err := limiter.Allow(context.Background(), "client-a", nil)
		require.NoError(t, err)

		allowed, _, err := limiter.Allow(context.Background(), "client-b", nil)

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("explicit limits override the defaults", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 100},
		})

		custom := []ratelimit.LimitConfig{{Window: time.Minute, Max: 1}}

		_, _, err := limiter.Allow(context.Background(), "client", custom)
		require.NoError(t, err)

		allowed, _, err := limiter.Allow(context.Background(), "client", custom)

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("checks every configured window", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(store.NewRateLimitMemoryStore(), []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 100},
			{Window: time.Hour, Max: 2},
		})

		for i := 0; i < 2; i++ {
			_, _, err := limiter.Allow(context.Background(), "client", nil)
			require.NoError(t, err)
		}

		allowed, exceeded, err := limiter.Allow(context.Background(), "client", nil)

		require.NoError(t, err)
		assert.False(t, allowed)
		require.NotNil(t, exceeded)
		assert.Equal(t, time.Hour, exceeded.Config.Window)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		limiter := ratelimit.NewLimiter(&errorStore{err: errors.New("store down")}, []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 1},
		})

		allowed, _, err := limiter.Allow(context.Background(), "client", nil)

		assert.Error(t, err)
		assert.False(t, allowed)
	})
}
