package gym

import (
	"context"

	"sportiva/internal/adapters/storage"
	domain "sportiva/internal/domain/gym"
)

// MembershipSQLiteStore implements MembershipStore using SQLite.
type MembershipSQLiteStore struct {
	db storage.SQLDB
}

// NewMembershipSQLiteStore creates a new membership store.
func NewMembershipSQLiteStore(db storage.SQLDB) *MembershipSQLiteStore {
	return &MembershipSQLiteStore{db: db}
}

// Save persists a Membership row.
// PRE: accountID and gymID are non-empty
// POST: Row inserted; the composite primary key rejects a duplicate join
func (s *MembershipSQLiteStore) Save(ctx context.Context, m domain.Membership) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO gym_membership (account_id, gym_id, joined_at) VALUES (?, ?, ?)",
		m.AccountID, m.GymID, storage.FormatTime(m.JoinedAt),
	)
	return err
}

// Exists reports whether the account has already joined the gym.
// POST: Returns true if the (account, gym) pair exists
func (s *MembershipSQLiteStore) Exists(ctx context.Context, accountID, gymID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM gym_membership WHERE account_id = ? AND gym_id = ?",
		accountID, gymID,
	).Scan(&count)
	return count > 0, err
}

// ListForAccount returns the gyms an account has joined, newest first.
// POST: Returns joined gyms with name and city resolved
func (s *MembershipSQLiteStore) ListForAccount(ctx context.Context, accountID string) ([]JoinedGym, error) {
	query := `SELECT m.gym_id, g.name, g.city, m.joined_at
		FROM gym_membership m
		JOIN gym g ON g.id = m.gym_id
		WHERE m.account_id = ?
		ORDER BY m.joined_at DESC`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []JoinedGym
	for rows.Next() {
		var jg JoinedGym
		if err := rows.Scan(&jg.GymID, &jg.GymName, &jg.GymCity, &jg.JoinedAt); err != nil {
			return nil, err
		}
		results = append(results, jg)
	}
	return results, rows.Err()
}

// CountForGym returns how many accounts have joined a gym.
// POST: Returns membership count for the gym
func (s *MembershipSQLiteStore) CountForGym(ctx context.Context, gymID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM gym_membership WHERE gym_id = ?", gymID,
	).Scan(&count)
	return count, err
}
