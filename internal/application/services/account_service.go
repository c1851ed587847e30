package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

// AccountService handles registration, credential verification and
// session token issuance.
type AccountService struct {
	accounts      repositories.AccountRepository
	sessionSecret []byte
	sessionTTL    time.Duration
}

// NewAccountService creates a new account service
func NewAccountService(accounts repositories.AccountRepository, sessionSecret []byte, sessionTTL time.Duration) *AccountService {
	return &AccountService{
		accounts:      accounts,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

// Register hashes the password and stores the account. No existence or
// strength check is performed; duplicate usernames are accepted.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}

	account := &entities.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.accounts.Create(ctx, account)
}

// Login verifies the credentials and returns a signed session token.
// Unknown user and wrong password produce the same generic failure so
// the two cases are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return "", apperrors.NewUnauthorizedError("login failed")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError("login failed")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   account.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	})

	signed, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign session token", err)
	}
	return signed, nil
}

// VerifySession validates a session token and returns the username
func (s *AccountService) VerifySession(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.NewUnauthorizedError("invalid session")
	}
	return claims.Subject, nil
}
