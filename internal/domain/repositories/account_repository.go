package repositories

import (
	"context"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// Create stores a new account. No uniqueness check is performed on
	// the username.
	Create(ctx context.Context, account *entities.Account) error

	// GetByUsername retrieves the first-inserted account with the given
	// username. A miss is reported as a not-found error.
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)
}
