package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
	redisclient "github.com/Ayu2427/Personal-doctor/internal/infrastructure/clients/redis"
)

// RedisLimiter implements a fixed-window rate limiter on Redis. INCR is
// atomic, so concurrent requests across instances cannot undercount.
type RedisLimiter struct {
	client *redisclient.Client
	prefix string
}

// NewRedisLimiter creates a new Redis-backed rate limiter
func NewRedisLimiter(client *redisclient.Client) providers.RateLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit"}
}

// Allow counts one request for key and reports whether it fits within
// limit requests per window
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	windowStart := time.Now().Unix() / int64(window.Seconds()) * int64(window.Seconds())
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, windowStart)

	count, err := l.client.Client().Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// First hit in the window owns the expiry. A second expiry from a
	// racing request is harmless.
	if count == 1 {
		if err := l.client.Client().Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}
