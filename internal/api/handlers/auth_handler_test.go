package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ayu2427/Personal-doctor/internal/api/handlers"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

type stubAuthenticator struct {
	registerErr error
	loginToken  string
	loginErr    error

	registered [][2]string
}

func (s *stubAuthenticator) Register(ctx context.Context, username, password string) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered = append(s.registered, [2]string{username, password})
	return nil
}

func (s *stubAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	service := &stubAuthenticator{}
	handler := handlers.NewAuthHandler(service, time.Hour)

	req := formRequest("/register", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Len(t, service.registered, 1)
	assert.Equal(t, "alice", service.registered[0][0])
}

func TestAuthHandler_Register_MissingCredentials(t *testing.T) {
	service := &stubAuthenticator{registerErr: apperrors.NewValidationError("username and password are required")}
	handler := handlers.NewAuthHandler(service, time.Hour)

	req := formRequest("/register", url.Values{"username": {"alice"}})
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "username and password are required", response["error"])
}

func TestAuthHandler_Login_SetsCookieAndRedirects(t *testing.T) {
	service := &stubAuthenticator{loginToken: "token-123"}
	handler := handlers.NewAuthHandler(service, 30*time.Minute)

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/chat", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, handlers.SessionCookieName, cookie.Name)
	assert.Equal(t, "token-123", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((30 * time.Minute).Seconds()), cookie.MaxAge)
}

func TestAuthHandler_Login_FailureIsGeneric(t *testing.T) {
	service := &stubAuthenticator{loginErr: apperrors.NewUnauthorizedError("login failed")}
	handler := handlers.NewAuthHandler(service, time.Hour)

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Login failed!", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Login_InternalErrorHidesDetail(t *testing.T) {
	service := &stubAuthenticator{loginErr: apperrors.NewInternalError("query failed", nil)}
	handler := handlers.NewAuthHandler(service, time.Hour)

	req := formRequest("/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "query failed")
}
