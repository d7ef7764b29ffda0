package trainer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/trainer"
)

const profileColumns = "id, account_id, experience_years, specialty, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer profile store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByAccountID retrieves the Profile belonging to an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Profile, error) {
	query := "SELECT " + profileColumns + " FROM trainer_profile WHERE account_id = ?"
	row := s.db.QueryRowContext(ctx, query, accountID)

	entity, err := scanProfile(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Profile{}, fmt.Errorf("trainer profile not found: %w", err)
	}
	return entity, err
}

// Save persists a Profile to the database.
// PRE: entity has been validated
// POST: Entity is persisted; the account_id unique constraint rejects a
// second profile for the same account
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Profile) error {
	query := `INSERT INTO trainer_profile (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			experience_years=excluded.experience_years,
			specialty=excluded.specialty`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.ExperienceYears,
		entity.Specialty,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Profile from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM trainer_profile WHERE id = ?", id)
	return err
}

// List retrieves Profiles based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Profile, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString("SELECT " + profileColumns + " FROM trainer_profile")

	if filter.Specialty != "" {
		queryBuilder.WriteString(" WHERE specialty = ?")
		args = append(args, filter.Specialty)
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Profile
	for rows.Next() {
		entity, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanProfile extracts a Profile from a row scanner function.
func scanProfile(scan func(dest ...any) error) (domain.Profile, error) {
	var entity domain.Profile
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.ExperienceYears,
		&entity.Specialty,
		&createdAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}
