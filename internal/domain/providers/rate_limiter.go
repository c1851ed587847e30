package providers

import (
	"context"
	"time"
)

// RateLimiter defines the admission-control interface. Implementations
// must count atomically so concurrent requests cannot undercount.
type RateLimiter interface {
	// Allow records one request for key and reports whether it fits
	// within limit requests per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
