package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ayu2427/Personal-doctor/internal/adapters/ratelimit"
	"github.com/Ayu2427/Personal-doctor/internal/api/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_RejectsAfterLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	handler := middleware.RateLimitMiddleware(limiter, "chat", 5, time.Minute, nil)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/chat_api", nil)
		req.RemoteAddr = "198.51.100.7:4321"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest("POST", "/chat_api", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitMiddleware_ClientsCountedSeparately(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	handler := middleware.RateLimitMiddleware(limiter, "chat", 1, time.Minute, nil)(okHandler())

	first := httptest.NewRequest("POST", "/chat_api", nil)
	first.RemoteAddr = "198.51.100.1:1000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest("POST", "/chat_api", nil)
	second.RemoteAddr = "198.51.100.2:1000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_ScopesCountedSeparately(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	defaultLimit := middleware.RateLimitMiddleware(limiter, "default", 1, time.Minute, nil)(okHandler())
	chatLimit := middleware.RateLimitMiddleware(limiter, "chat", 1, time.Minute, nil)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.9:1000"
	w := httptest.NewRecorder()
	defaultLimit.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("POST", "/chat_api", nil)
	req.RemoteAddr = "198.51.100.9:1000"
	w = httptest.NewRecorder()
	chatLimit.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_HonorsForwardedFor(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter()
	handler := middleware.RateLimitMiddleware(limiter, "chat", 1, time.Minute, nil)(okHandler())

	req := httptest.NewRequest("POST", "/chat_api", nil)
	req.RemoteAddr = "10.0.0.1:1000"
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same forwarded client behind a different proxy hop shares the
	// counter.
	req = httptest.NewRequest("POST", "/chat_api", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, errors.New("backend down")
}

func TestRateLimitMiddleware_FailsOpenOnLimiterError(t *testing.T) {
	handler := middleware.RateLimitMiddleware(failingLimiter{}, "chat", 1, time.Minute, nil)(okHandler())

	req := httptest.NewRequest("POST", "/chat_api", nil)
	req.RemoteAddr = "198.51.100.3:1000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
