package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"sportiva/internal/domain/audit"

	"github.com/google/uuid"
)

// AuditAppender records audit events. Orchestrators treat audit writes as
// best effort: a failed append is logged but never fails the use case.
type AuditAppender interface {
	Append(ctx context.Context, e audit.Event) error
}

func recordAudit(ctx context.Context, store AuditAppender, e audit.Event) {
	if store == nil {
		return
	}
	e.ID = uuid.New().String()
	e.Timestamp = time.Now()
	if err := store.Append(ctx, e); err != nil {
		slog.Warn("audit_append_failed", "category", e.Category, "action", e.Action, "error", err)
	}
}
