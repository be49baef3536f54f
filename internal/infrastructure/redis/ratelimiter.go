package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// FixedWindowLimiter counts requests per scope+identity in a fixed
// window: INCR the bucket, set its expiry on the first hit. A nil
// client disables limiting and every call is allowed (fail-open).
type FixedWindowLimiter struct {
	client *Client
}

func NewFixedWindowLimiter(c *Client) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: c}
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 if allowed
}

// Atomic INCR plus expiry on first hit. Returns {count, ttl_ms}.
const fixedWindowScript = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`

// Allow consumes one slot for identity under scope. Scope is the route
// name ("login", "refresh"), identity the client IP or user id.
// Redis failures allow the request rather than locking everyone out.
func (l *FixedWindowLimiter) Allow(ctx context.Context, scope, identity string, limit int, window time.Duration) Decision {
	if limit <= 0 || l.client == nil {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}
	}
	if window < time.Second {
		window = time.Minute
	}

	key := fmt.Sprintf("ratelimit:%s:%s", scope, identity)
	res, err := l.client.rdb.Eval(ctx, fixedWindowScript, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
		return Decision{Allowed: true, Limit: limit, Remaining: limit}
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		log.Warn().Str("scope", scope).Msg("rate limiter returned unexpected shape, allowing request")
		return Decision{Allowed: true, Limit: limit, Remaining: limit}
	}

	count := int(arr[0].(int64))
	ttl := time.Duration(arr[1].(int64)) * time.Millisecond

	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(0, limit-count),
	}
	if !d.Allowed {
		d.RetryAfter = ttl
		if d.RetryAfter <= 0 {
			d.RetryAfter = window
		}
	}
	return d
}
