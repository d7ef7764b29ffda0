package account

import (
	"context"

	domain "sportiva/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	SetFlags(ctx context.Context, id string, flags FlagUpdate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Account, error)
	Count(ctx context.Context) (int, error)
}

// FlagUpdate carries a partial update of the two role flags.
// A nil field leaves that flag untouched.
type FlagUpdate struct {
	IsTrainer    *bool
	IsGymManager *bool
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Role   string // member matches everyone; trainer/gymmanager filter on the flag
}
