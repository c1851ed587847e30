package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/clients/postgres"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

const accountsTable = "accounts"

// No UNIQUE constraint on username: concurrent registrations of the
// same name can both land. Kept as observed behavior, see DESIGN.md.
const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
)`

// AccountAdapter implements AccountRepository on PostgreSQL
type AccountAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAccountAdapter creates a new account adapter and ensures the
// backing table exists
func NewAccountAdapter(client *postgres.Client) (repositories.AccountRepository, error) {
	if _, err := client.DB().Exec(accountsSchema); err != nil {
		return nil, apperrors.NewInternalError("failed to ensure accounts table", err)
	}
	return &AccountAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}, nil
}

// Create stores a new account
func (a *AccountAdapter) Create(ctx context.Context, account *entities.Account) error {
	query, args, err := a.db.Insert(accountsTable).
		Rows(goqu.Record{
			"id":            account.ID,
			"username":      account.Username,
			"password_hash": account.PasswordHash,
			"created_at":    account.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create account", err)
	}
	return nil
}

// GetByUsername retrieves the first-inserted account with the given
// username
func (a *AccountAdapter) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	sqlQuery, args, err := a.db.Select("id", "username", "password_hash", "created_at").
		From(accountsTable).
		Where(goqu.Ex{"username": username}).
		Order(goqu.C("created_at").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	account := &entities.Account{}
	err = a.client.DB().QueryRowContext(ctx, sqlQuery, args...).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %q not found", username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get account", err)
	}

	return account, nil
}
