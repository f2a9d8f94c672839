package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRetry keeps Wait from spinning when Redis reports no retry delay.
const minRetry = 10 * time.Millisecond

// slidingWindow admits a request when fewer than limit requests were made in
// the last window. A denied request gets the score of the oldest entry so the
// caller knows when a slot frees up.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call("zremrangebyscore", key, "-inf", window_start)
	local current = redis.call("zcard", key)

	if current < limit then
		redis.call("zadd", key, now, now .. "-" .. math.random())
		redis.call("pexpire", key, window_ms)
		return {1, limit - current - 1}
	end

	local oldest = redis.call("zrange", key, 0, 0, "WITHSCORES")
	if #oldest > 0 then
		return {0, 0, oldest[2]}
	end
	return {0, 0, 0}
`)

// Result contains the result of a rate limit check
type Result struct {
	Allowed   bool
	Remaining int64
	RetryIn   time.Duration
}

// RedisLimiter is a sliding window limiter shared through Redis
type RedisLimiter struct {
	rdb       *redis.Client
	keyPrefix string
	limit     int64
	window    time.Duration
}

// NewRedisLimiter allows limit requests per window for each key.
func NewRedisLimiter(rdb *redis.Client, keyPrefix string, limit int64, window time.Duration) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisLimiter{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
	}
}

func (r *RedisLimiter) blockKey(key string) string {
	return r.keyPrefix + key + ":block"
}

// Allow checks if a request is allowed under the rate limit
func (r *RedisLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()

	// a blocked key fails closed until the block expires
	ttl, err := r.rdb.PTTL(ctx, r.blockKey(key)).Result()
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		return &Result{Allowed: false, RetryIn: ttl}, nil
	}

	result, err := slidingWindow.Run(ctx, r.rdb, []string{r.keyPrefix + key},
		now.UnixMilli(),
		now.Add(-r.window).UnixMilli(),
		r.limit,
		r.window.Milliseconds(),
	).Slice()
	if err != nil {
		return nil, err
	}

	allowed, err := toInt64(result[0])
	if err != nil {
		return nil, err
	}
	remaining, err := toInt64(result[1])
	if err != nil {
		return nil, err
	}

	res := &Result{Allowed: allowed == 1, Remaining: remaining}
	if !res.Allowed && len(result) > 2 {
		oldestMs, err := toInt64(result[2])
		if err != nil {
			return nil, err
		}
		if oldestMs > 0 {
			res.RetryIn = time.UnixMilli(oldestMs).Add(r.window).Sub(now)
		}
	}
	return res, nil
}

func (r *RedisLimiter) Wait(ctx context.Context, key string) error {
	for {
		res, err := r.Allow(ctx, key)
		if err != nil {
			return fmt.Errorf("rate limit check failed: %w", err)
		}
		if res.Allowed {
			return nil
		}

		wait := res.RetryIn
		if wait < minRetry {
			wait = minRetry
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RedisLimiter) BlockFor(ctx context.Context, key string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.blockKey(key), "1", d).Err()
}

// Reset clears the window and any block of key
func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.keyPrefix+key, r.blockKey(key)).Err()
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		// zrange WITHSCORES returns scores as strings
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(n, 64)
			if ferr != nil {
				return 0, err
			}
			return int64(f), nil
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unexpected numeric type %T", v)
	}
}
