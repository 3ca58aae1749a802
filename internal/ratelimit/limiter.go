package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// MetadataKey is the key used to store rate limit config in huma
// operation metadata.
const MetadataKey = "rateLimit"

// Store records one hit for a client key and reports how many hits the
// key has accumulated inside the window, pruning anything older. The
// key already combines the hashed client identity with the window, so
// stores never need to distinguish limits themselves.
type Store interface {
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitConfig is one window/max pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig defines per-endpoint rate limit configuration,
// attached to huma operations via the Metadata field. When Limits is
// empty the middleware's default limits apply.
type EndpointConfig struct {
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// Exceeded describes which limit was hit.
type Exceeded struct {
	Config LimitConfig
	Count  int64
}

// Limiter enforces a set of sliding-window limits against a Store.
type Limiter struct {
	store  Store
	limits []LimitConfig
}

// NewLimiter creates a limiter with the given default limits.
func NewLimiter(store Store, limits []LimitConfig) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
	}
}

// Allow checks the client key against the given limits, or the
// limiter's defaults when limits is empty. It returns false and the
// exceeded limit when any window is over its maximum.
func (l *Limiter) Allow(ctx context.Context, clientKey string, limits []LimitConfig) (bool, *Exceeded, error) {
	if len(limits) == 0 {
		limits = l.limits
	}

	for _, limit := range limits {
		// Key combines client and window for independent tracking.
		key := fmt.Sprintf("%s:%d", clientKey, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &Exceeded{Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}
