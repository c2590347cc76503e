package repository

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter is the in-process fallback limiter. Keys map to
// token buckets that refill at the window-average rate.
type MemoryRateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewMemoryRateLimiter(rps float64, burst int) *MemoryRateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &MemoryRateLimiter{rps: rate.Limit(rps), burst: burst}
}

func (m *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return m.getLimiter(key).Allow(), nil
}

func (m *MemoryRateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := m.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(m.rps, m.burst)
	actual, loaded := m.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
