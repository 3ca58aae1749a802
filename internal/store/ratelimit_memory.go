package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore keeps sliding-window hit timestamps in process
// memory. Limits tracked here are per instance; multi-instance
// deployments share counts through RateLimitRedisStore instead.
type RateLimitMemoryStore struct {
	mu   sync.Mutex
	hits map[string][]int64
}

// NewRateLimitMemoryStore creates an empty in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		hits: make(map[string][]int64),
	}
}

// Record prunes hits older than the window, appends the current one and
// returns how many remain.
func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	cutoff := now - window.Nanoseconds()

	kept := s.hits[key][:0]

	for _, hit := range s.hits[key] {
		if hit > cutoff {
			kept = append(kept, hit)
		}
	}

	kept = append(kept, now)
	s.hits[key] = kept

	return int64(len(kept)), nil
}
