package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
)

// MemoryLimiter implements a fixed-window rate limiter in process
// memory. Used when Redis is unavailable; counters are only valid for a
// single instance.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is injectable for tests
	now func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewMemoryLimiter creates a new in-memory rate limiter
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// NewMemoryLimiterWithClock creates a limiter with a custom clock
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		now:     now,
	}
}

// Allow counts one request for key and reports whether it fits within
// limit requests per window
func (l *MemoryLimiter) Allow(ctx context.Context, key string, limit int, windowSize time.Duration) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= windowSize {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	return w.count <= limit, nil
}

var _ providers.RateLimiter = (*MemoryLimiter)(nil)
