package limiter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter applies the same policy as MemoryLimiter against a shared
// Redis instance, for deployments running more than one server process.
// The read-evaluate-write cycle is not atomic across processes; for a soft
// limiter that race is tolerable.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

type redisRecord struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
	LastRequest time.Time `json:"lastRequest"`
}

// NewRedisLimiter creates a limiter backed by the Redis instance at addr.
func NewRedisLimiter(addr string) *RedisLimiter {
	return &RedisLimiter{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		now:    time.Now,
	}
}

// Check applies the window and cooldown policy to the identifier. If Redis
// is unreachable the request is allowed: availability wins for a soft
// limiter with a verification gate behind it.
func (l *RedisLimiter) Check(ctx context.Context, identifier string) Decision {
	now := l.now()
	key := redisKeyPrefix + identifier

	val, err := l.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		slog.Warn("rate limit store unreachable", "error", err)
		return Decision{Allowed: true}
	}

	rec := record{count: 1, windowStart: now, lastRequest: now}
	fresh := err == redis.Nil
	if !fresh {
		var stored redisRecord
		if uerr := json.Unmarshal([]byte(val), &stored); uerr != nil {
			fresh = true
		} else {
			rec = record{count: stored.Count, windowStart: stored.WindowStart, lastRequest: stored.LastRequest}
		}
	}

	d := Decision{Allowed: true}
	next := rec
	if !fresh {
		d, next = apply(rec, now)
		if !d.Allowed {
			return d
		}
	}

	payload, _ := json.Marshal(redisRecord{
		Count:       next.count,
		WindowStart: next.windowStart,
		LastRequest: next.lastRequest,
	})
	if serr := l.client.Set(ctx, key, payload, staleAfter).Err(); serr != nil {
		slog.Warn("rate limit store write failed", "error", serr)
	}
	return d
}
