package routes

import (
	"net/http"

	"github.com/Ayu2427/Personal-doctor/internal/api/handlers"
	"github.com/Ayu2427/Personal-doctor/internal/api/middleware"
	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/observability"
	"github.com/Ayu2427/Personal-doctor/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler *handlers.AuthHandler
	chatHandler *handlers.ChatHandler

	sessions  middleware.SessionVerifier
	limiter   providers.RateLimiter
	rateLimit config.RateLimitConfig
	metrics   *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	sessions middleware.SessionVerifier,
	limiter providers.RateLimiter,
	rateLimit config.RateLimitConfig,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		authHandler: authHandler,
		chatHandler: chatHandler,
		sessions:    sessions,
		limiter:     limiter,
		rateLimit:   rateLimit,
		metrics:     metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("POST /register", r.authHandler.Register)
	r.mux.HandleFunc("POST /login", r.authHandler.Login)

	// The diagnosis endpoint carries its own stricter limit. Admission
	// control runs before the session check so rejection stays cheap.
	chatLimit := middleware.RateLimitMiddleware(r.limiter, "chat", r.rateLimit.ChatPerMinute, r.rateLimit.Window, r.metrics)
	session := middleware.SessionMiddleware(r.sessions)
	r.mux.Handle("POST /chat_api", chatLimit(session(http.HandlerFunc(r.chatHandler.Chat))))

	// Middleware applied in reverse order (last wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RateLimitMiddleware(r.limiter, "default", r.rateLimit.DefaultPerMinute, r.rateLimit.Window, r.metrics)(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
