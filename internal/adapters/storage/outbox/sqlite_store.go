package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/outbox"
)

const entryColumns = "id, action_type, payload, status, attempts, max_attempts, last_attempted_at, created_at, external_id, error_message"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new outbox store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Entry by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	query := "SELECT " + entryColumns + " FROM outbox WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("outbox entry not found: %w", err)
	}
	return entity, err
}

// Save persists an Entry to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Entry) error {
	query := `INSERT INTO outbox (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			attempts=excluded.attempts,
			last_attempted_at=excluded.last_attempted_at,
			external_id=excluded.external_id,
			error_message=excluded.error_message`

	var lastAttempted any
	if !entity.LastAttemptedAt.IsZero() {
		lastAttempted = storage.FormatTime(entity.LastAttemptedAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ActionType,
		entity.Payload,
		entity.Status,
		entity.Attempts,
		entity.MaxAttempts,
		lastAttempted,
		storage.FormatTime(entity.CreatedAt),
		entity.ExternalID,
		entity.ErrorMessage,
	)
	return err
}

// ListPending retrieves entries that may still be delivered, oldest first.
// PRE: limit > 0
// POST: Returns pending/retrying entries plus failed ones below max attempts
func (s *SQLiteStore) ListPending(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := "SELECT " + entryColumns + ` FROM outbox
		WHERE (status IN (?, ?) OR (status = ? AND attempts < max_attempts))
		ORDER BY created_at ASC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query,
		domain.StatusPending, domain.StatusRetrying, domain.StatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		entity, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanEntry extracts an Entry from a row scanner function.
func scanEntry(scan func(dest ...any) error) (domain.Entry, error) {
	var entity domain.Entry
	var createdAt string
	var lastAttempted sql.NullString
	err := scan(
		&entity.ID,
		&entity.ActionType,
		&entity.Payload,
		&entity.Status,
		&entity.Attempts,
		&entity.MaxAttempts,
		&lastAttempted,
		&createdAt,
		&entity.ExternalID,
		&entity.ErrorMessage,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if lastAttempted.Valid && lastAttempted.String != "" {
		entity.LastAttemptedAt, _ = storage.ParseTime(lastAttempted.String)
	}
	return entity, nil
}
