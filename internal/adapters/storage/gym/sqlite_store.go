package gym

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/gym"
)

const gymColumns = "id, name, city, owner_account_id, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new GymStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Gym by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Gym, error) {
	query := "SELECT " + gymColumns + " FROM gym WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanGym(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Gym{}, fmt.Errorf("gym not found: %w", err)
	}
	return entity, err
}

// Save persists a Gym to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); owner is immutable on update
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Gym) error {
	query := `INSERT INTO gym (` + gymColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			city=excluded.city`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.City,
		entity.OwnerAccountID,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Gym from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM gym WHERE id = ?", id)
	return err
}

// List retrieves Gyms based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by name
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Gym, error) {
	query, args := buildListQuery("SELECT "+gymColumns+" FROM gym", filter)
	query += " ORDER BY name ASC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Gym
	for rows.Next() {
		entity, err := scanGym(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListByOwner retrieves all gyms owned by an account.
// PRE: ownerAccountID is non-empty
// POST: Returns owned gyms; empty slice when the owner has none
func (s *SQLiteStore) ListByOwner(ctx context.Context, ownerAccountID string) ([]domain.Gym, error) {
	query := "SELECT " + gymColumns + " FROM gym WHERE owner_account_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, ownerAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Gym
	for rows.Next() {
		entity, err := scanGym(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of gyms matching the filter.
// POST: Returns matching row count
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	query, args := buildListQuery("SELECT COUNT(*) FROM gym", filter)
	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// buildListQuery appends the shared WHERE clause for List and Count.
func buildListQuery(base string, filter ListFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.City != "" {
		conds = append(conds, "city = ?")
		args = append(args, filter.City)
	}
	if filter.Search != "" {
		conds = append(conds, "name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conds) > 0 {
		base += " WHERE " + strings.Join(conds, " AND ")
	}
	return base, args
}

// scanGym extracts a Gym from a row scanner function.
func scanGym(scan func(dest ...any) error) (domain.Gym, error) {
	var entity domain.Gym
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.City,
		&entity.OwnerAccountID,
		&createdAt,
	)
	if err != nil {
		return domain.Gym{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	return entity, nil
}
