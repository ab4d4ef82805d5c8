package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a Redis-backed token bucket shared across instances.
// Refill and consume happen in one Lua script, so the decision is atomic.
// Key format: rl:<scope>
type RateLimiter struct {
	client      *redis.Client
	capacity    int
	refillEvery time.Duration
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

var bucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
    tokens = math.min(capacity, tokens + intervals)
    last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// NewRateLimiter creates a limiter allowing bursts of capacity requests,
// refilling one token per refillEvery.
func NewRateLimiter(client *redis.Client, capacity int, refillEvery time.Duration) *RateLimiter {
	if capacity < 1 {
		capacity = 1
	}
	if refillEvery <= 0 {
		refillEvery = time.Second
	}
	return &RateLimiter{client: client, capacity: capacity, refillEvery: refillEvery}
}

// Allow consumes one token from the bucket identified by key.
func (l *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	ttl := int64((time.Duration(l.capacity+1) * l.refillEvery) / time.Second)
	if ttl < 1 {
		ttl = 1
	}

	vals, err := bucketScript.Run(ctx, l.client, []string{"rl:" + key},
		time.Now().UnixMilli(),
		l.capacity,
		l.refillEvery.Milliseconds(),
		ttl,
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit check: %w", err)
	}

	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 3 {
		return Decision{}, fmt.Errorf("rate limit check: unexpected script result %#v", vals)
	}

	return Decision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  asInt64(arr[1]),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

// Capacity returns the configured burst size (for response headers).
func (l *RateLimiter) Capacity() int {
	return l.capacity
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}
