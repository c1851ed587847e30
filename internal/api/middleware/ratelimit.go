package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/observability"
)

// RateLimitMiddleware rejects requests exceeding limit per window for a
// client identity, before any downstream work runs. Rejections are a
// normal control outcome, answered with 429.
// The scope keeps independent limits (service-wide vs per-endpoint)
// counting on separate keys for the same client.
func RateLimitMiddleware(limiter providers.RateLimiter, scope string, limit int, window time.Duration, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				// Limiter backend failure fails open: the demo
				// should not become unavailable because Redis is.
				log.Warn().Err(err).Msg("rate limiter unavailable, admitting request")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				observability.RecordRateLimitRejection(r.Context(), metrics, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client network identity, honoring proxy
// headers before falling back to the connection address
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
