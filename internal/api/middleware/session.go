package middleware

import (
	"context"
	"net/http"

	"github.com/Ayu2427/Personal-doctor/internal/api/handlers"
)

// SessionVerifier validates a session token and returns the username
type SessionVerifier interface {
	VerifySession(token string) (string, error)
}

type contextKey string

// UserContextKey carries the authenticated username in the request
// context
const UserContextKey contextKey = "user"

// SessionMiddleware requires a valid session cookie and stores the
// username in the request context
func SessionMiddleware(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handlers.SessionCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			username, err := verifier.VerifySession(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized"}`))
}
