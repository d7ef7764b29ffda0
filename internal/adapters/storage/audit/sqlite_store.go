package audit

import (
	"context"
	"strings"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/audit"
)

const eventColumns = "id, timestamp, category, action, severity, actor_id, actor_email, resource_id, resource_type, description, ip_address"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Append writes a new audit event. Events are never updated or deleted.
// PRE: e has ID and Timestamp set
// POST: Event is persisted
func (s *SQLiteStore) Append(ctx context.Context, e domain.Event) error {
	query := "INSERT INTO audit_event (" + eventColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		storage.FormatTime(e.Timestamp),
		string(e.Category),
		string(e.Action),
		string(e.Severity),
		e.ActorID,
		e.ActorEmail,
		e.ResourceID,
		e.ResourceType,
		e.Description,
		e.IPAddress,
	)
	return err
}

// List retrieves audit events based on the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching events
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	var conds []string
	var args []any

	query := "SELECT " + eventColumns + " FROM audit_event"
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.ActorID != "" {
		conds = append(conds, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts, category, action, severity string
		err := rows.Scan(
			&e.ID, &ts, &category, &action, &severity,
			&e.ActorID, &e.ActorEmail, &e.ResourceID, &e.ResourceType,
			&e.Description, &e.IPAddress,
		)
		if err != nil {
			return nil, err
		}
		e.Timestamp, _ = storage.ParseTime(ts)
		e.Category = domain.Category(category)
		e.Action = domain.Action(action)
		e.Severity = domain.Severity(severity)
		results = append(results, e)
	}
	return results, rows.Err()
}
