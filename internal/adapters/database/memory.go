package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

// MemoryConditionAdapter implements ConditionRepository in process
// memory. Used for the memory store driver and in tests.
type MemoryConditionAdapter struct {
	mu      sync.RWMutex
	records []entities.ConditionRecord
	seen    map[string]struct{}
}

// NewMemoryConditionAdapter creates an empty in-memory catalog
func NewMemoryConditionAdapter() *MemoryConditionAdapter {
	return &MemoryConditionAdapter{seen: make(map[string]struct{})}
}

// Seed inserts catalog records, skipping patterns that already exist
func (a *MemoryConditionAdapter) Seed(ctx context.Context, records []entities.ConditionRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, rec := range records {
		if _, ok := a.seen[rec.SymptomPattern]; ok {
			continue
		}
		rec.Seq = len(a.records) + 1
		a.records = append(a.records, rec)
		a.seen[rec.SymptomPattern] = struct{}{}
	}
	return nil
}

// Match returns the first-seeded condition whose pattern contains the
// query as a substring
func (a *MemoryConditionAdapter) Match(ctx context.Context, query string) (*entities.ConditionRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i := range a.records {
		if strings.Contains(a.records[i].SymptomPattern, query) {
			rec := a.records[i]
			return &rec, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no condition matches the given symptoms")
}

// Count returns the number of catalog records
func (a *MemoryConditionAdapter) Count(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records), nil
}

// MemoryAccountAdapter implements AccountRepository in process memory
type MemoryAccountAdapter struct {
	mu       sync.RWMutex
	accounts []entities.Account
}

// NewMemoryAccountAdapter creates an empty in-memory account store
func NewMemoryAccountAdapter() *MemoryAccountAdapter {
	return &MemoryAccountAdapter{}
}

// Create stores a new account. Duplicate usernames are accepted, as in
// the persistent adapter.
func (a *MemoryAccountAdapter) Create(ctx context.Context, account *entities.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = append(a.accounts, *account)
	return nil
}

// GetByUsername retrieves the first-inserted account with the given
// username
func (a *MemoryAccountAdapter) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i := range a.accounts {
		if a.accounts[i].Username == username {
			account := a.accounts[i]
			return &account, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %q not found", username))
}

var (
	_ repositories.ConditionRepository = (*MemoryConditionAdapter)(nil)
	_ repositories.AccountRepository   = (*MemoryAccountAdapter)(nil)
)
