package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

// Authenticator is the account service surface the auth handler needs
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	accounts   Authenticator
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts Authenticator, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessionTTL: sessionTTL}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if err := h.accounts.Register(r.Context(), username, password); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		log.Error().Err(err).Msg("registration failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login handles POST /login. On failure the response is the same plain
// message whether the user is unknown or the password is wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Login failed!"))
			return
		}
		log.Error().Err(err).Msg("login failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}
