package repositories

import (
	"context"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
)

// ConditionRepository defines the interface for the condition catalog store
type ConditionRepository interface {
	// Seed inserts catalog records, skipping patterns that already exist
	// (first-write-wins). Safe to call on every startup.
	Seed(ctx context.Context, records []entities.ConditionRecord) error

	// Match returns the condition whose stored pattern contains the
	// normalized query as a substring. Ties are broken by lowest
	// insertion index. A miss is reported as a not-found error.
	Match(ctx context.Context, query string) (*entities.ConditionRecord, error)

	// Count returns the number of catalog records
	Count(ctx context.Context) (int, error)
}
