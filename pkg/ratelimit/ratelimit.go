// Package ratelimit paces outbound page requests per host. KeyedLimiter
// paces a single process, RedisLimiter shares a sliding window between every
// instance using the same Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter blocks callers until a request for key may be sent.
type Limiter interface {
	Wait(ctx context.Context, key string) error
	// BlockFor holds back every request for key for d, e.g. after a 429
	// with a Retry-After header.
	BlockFor(ctx context.Context, key string, d time.Duration) error
}

var (
	_ Limiter = (*KeyedLimiter)(nil)
	_ Limiter = (*RedisLimiter)(nil)
)

// KeyedLimiter manages one token bucket per key.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	blocked  map[string]time.Time
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewKeyedLimiter allows perMinute requests per key with bursts of burst.
func NewKeyedLimiter(perMinute int, burst int) *KeyedLimiter {
	if burst < 1 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		blocked:  make(map[string]time.Time),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request for key may be sent now, without waiting.
func (l *KeyedLimiter) Allow(key string) bool {
	limiter, until := l.get(key)
	if l.now().Before(until) {
		return false
	}
	return limiter.Allow()
}

func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	limiter, until := l.get(key)

	if wait := until.Sub(l.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return limiter.Wait(ctx)
}

func (l *KeyedLimiter) BlockFor(_ context.Context, key string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	until := l.now().Add(d)
	if until.After(l.blocked[key]) {
		l.blocked[key] = until
	}
	return nil
}

func (l *KeyedLimiter) get(key string) (*rate.Limiter, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter, l.blocked[key]
}
