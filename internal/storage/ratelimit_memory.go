package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ RateLimiter = (*MemoryRateLimiter)(nil)

// MemoryRateLimiter applies a per-key token bucket. Used when no Redis is
// configured; limits are then per-process.
type MemoryRateLimiter struct {
	mu        sync.RWMutex
	limiters  map[string]*rate.Limiter
	rateLimit rate.Limit
	burst     int
}

func NewMemoryRateLimiter(perSecond float64, burst int) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(perSecond),
		burst:     burst,
	}
}

func (m *MemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	m.mu.RLock()
	limiter, exists := m.limiters[key]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		limiter, exists = m.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(m.rateLimit, m.burst)
			m.limiters[key] = limiter
		}
		m.mu.Unlock()
	}

	if limiter.Allow() {
		return RateLimitResult{Allowed: true}, nil
	}
	return RateLimitResult{Allowed: false, RetryAfter: time.Second}, nil
}
