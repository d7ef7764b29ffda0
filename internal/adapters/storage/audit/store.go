package audit

import (
	"context"

	domain "sportiva/internal/domain/audit"
)

// Store persists audit events. Events are append-only.
type Store interface {
	Append(ctx context.Context, e domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit    int
	Offset   int
	Category string
	ActorID  string
}
