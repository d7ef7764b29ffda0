package trainer

import (
	"context"

	domain "sportiva/internal/domain/trainer"
)

// Store persists trainer Profile state.
type Store interface {
	GetByAccountID(ctx context.Context, accountID string) (domain.Profile, error)
	Save(ctx context.Context, value domain.Profile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Profile, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit     int
	Offset    int
	Specialty string
}
