package gym

import (
	"context"

	domain "sportiva/internal/domain/gym"
)

// Store persists Gym state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Gym, error)
	Save(ctx context.Context, value domain.Gym) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Gym, error)
	ListByOwner(ctx context.Context, ownerAccountID string) ([]domain.Gym, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// MembershipStore persists the account and gym join rows.
type MembershipStore interface {
	Save(ctx context.Context, m domain.Membership) error
	Exists(ctx context.Context, accountID, gymID string) (bool, error)
	ListForAccount(ctx context.Context, accountID string) ([]JoinedGym, error)
	CountForGym(ctx context.Context, gymID string) (int, error)
}

// JoinedGym is a membership row joined with the gym it references.
type JoinedGym struct {
	GymID    string
	GymName  string
	GymCity  string
	JoinedAt string
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	City   string
	Search string
}
