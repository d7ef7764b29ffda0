package notice

import (
	"context"

	domain "sportiva/internal/domain/notice"
)

// Store persists Notice state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Notice, error)
	Save(ctx context.Context, value domain.Notice) error
	Delete(ctx context.Context, id string) error
	ListForGym(ctx context.Context, gymID string) ([]domain.Notice, error)
	ListPublishedForGyms(ctx context.Context, gymIDs []string) ([]domain.Notice, error)
}
