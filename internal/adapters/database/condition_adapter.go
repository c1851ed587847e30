package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Ayu2427/Personal-doctor/internal/domain/entities"
	"github.com/Ayu2427/Personal-doctor/internal/domain/repositories"
	"github.com/Ayu2427/Personal-doctor/internal/infrastructure/clients/postgres"
	apperrors "github.com/Ayu2427/Personal-doctor/pkg/errors"
)

const conditionsTable = "symptom_conditions"

// conditionsSchema keeps the demo deployable without a migration tool.
// The primary key on the pattern makes re-seeding a no-op and seq
// preserves insertion order for the match tie-break.
const conditionsSchema = `
CREATE TABLE IF NOT EXISTS symptom_conditions (
	symptom_pattern TEXT PRIMARY KEY,
	condition_name  TEXT NOT NULL,
	medicines       TEXT NOT NULL,
	seq             SERIAL
)`

// ConditionAdapter implements ConditionRepository on PostgreSQL
type ConditionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConditionAdapter creates a new condition adapter and ensures the
// backing table exists
func NewConditionAdapter(client *postgres.Client) (repositories.ConditionRepository, error) {
	if _, err := client.DB().Exec(conditionsSchema); err != nil {
		return nil, apperrors.NewInternalError("failed to ensure symptom_conditions table", err)
	}
	return &ConditionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}, nil
}

// Seed inserts catalog records, leaving already-seeded patterns
// untouched (first-write-wins)
func (a *ConditionAdapter) Seed(ctx context.Context, records []entities.ConditionRecord) error {
	for _, rec := range records {
		query, args, err := a.db.Insert(conditionsTable).
			Rows(goqu.Record{
				"symptom_pattern": rec.SymptomPattern,
				"condition_name":  rec.ConditionName,
				"medicines":       rec.Medicines,
			}).
			OnConflict(goqu.DoNothing()).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build seed query", err)
		}

		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to seed condition catalog", err)
		}
	}
	return nil
}

// Match returns the first-seeded condition whose pattern contains the
// query as a substring. The query goes into LIKE unescaped, so % and _
// in the input act as wildcards. An empty query matches the first
// record.
func (a *ConditionAdapter) Match(ctx context.Context, query string) (*entities.ConditionRecord, error) {
	sqlQuery, args, err := a.db.Select("seq", "symptom_pattern", "condition_name", "medicines").
		From(conditionsTable).
		Where(goqu.C("symptom_pattern").Like("%" + query + "%")).
		Order(goqu.C("seq").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build match query", err)
	}

	rec := &entities.ConditionRecord{}
	err = a.client.DB().QueryRowContext(ctx, sqlQuery, args...).Scan(
		&rec.Seq,
		&rec.SymptomPattern,
		&rec.ConditionName,
		&rec.Medicines,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("no condition matches the given symptoms")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to match symptoms", err)
	}

	return rec, nil
}

// Count returns the number of catalog records
func (a *ConditionAdapter) Count(ctx context.Context) (int, error) {
	sqlQuery, args, err := a.db.Select(goqu.COUNT("*")).From(conditionsTable).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count conditions", err)
	}
	return count, nil
}
