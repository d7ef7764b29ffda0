package notice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/notice"
)

const noticeColumns = "id, gym_id, title, content, status, created_by, created_at, published_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NoticeStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	query := "SELECT " + noticeColumns + " FROM notice WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// Save persists a Notice to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	query := `INSERT INTO notice (` + noticeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			content=excluded.content,
			status=excluded.status,
			published_at=excluded.published_at`

	var publishedAt any
	if !entity.PublishedAt.IsZero() {
		publishedAt = storage.FormatTime(entity.PublishedAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.GymID,
		entity.Title,
		entity.Content,
		entity.Status,
		entity.CreatedBy,
		storage.FormatTime(entity.CreatedAt),
		publishedAt,
	)
	return err
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// ListForGym retrieves all notices for a gym, drafts included, newest first.
// PRE: gymID is non-empty
// POST: Returns matching entities
func (s *SQLiteStore) ListForGym(ctx context.Context, gymID string) ([]domain.Notice, error) {
	query := "SELECT " + noticeColumns + " FROM notice WHERE gym_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotices(rows)
}

// ListPublishedForGyms retrieves published notices across a set of gyms,
// newest first. Used by member dashboards to show announcements from every
// joined gym.
// POST: Returns matching entities; empty slice for an empty gym set
func (s *SQLiteStore) ListPublishedForGyms(ctx context.Context, gymIDs []string) ([]domain.Notice, error) {
	if len(gymIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(gymIDs)), ", ")
	query := "SELECT " + noticeColumns + " FROM notice WHERE status = ? AND gym_id IN (" + placeholders + ") ORDER BY published_at DESC"

	args := make([]any, 0, len(gymIDs)+1)
	args = append(args, domain.StatusPublished)
	for _, id := range gymIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotices(rows)
}

func collectNotices(rows *sql.Rows) ([]domain.Notice, error) {
	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanNotice extracts a Notice from a row scanner function.
func scanNotice(scan func(dest ...any) error) (domain.Notice, error) {
	var entity domain.Notice
	var createdAt string
	var publishedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.GymID,
		&entity.Title,
		&entity.Content,
		&entity.Status,
		&entity.CreatedBy,
		&createdAt,
		&publishedAt,
	)
	if err != nil {
		return domain.Notice{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if publishedAt.Valid && publishedAt.String != "" {
		entity.PublishedAt, _ = storage.ParseTime(publishedAt.String)
	}
	return entity, nil
}
