package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sportiva/internal/domain/gym"
	"sportiva/internal/domain/notice"

	"github.com/google/uuid"
)

// GymStoreForNotice checks gym ownership for notice operations.
type GymStoreForNotice interface {
	GetByID(ctx context.Context, id string) (gym.Gym, error)
}

// NoticeStoreForPublish persists notices.
type NoticeStoreForPublish interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
}

// CreateNoticeInput carries a new draft notice.
type CreateNoticeInput struct {
	GymID      string
	AuthorID   string
	Title      string
	Content    string // markdown
	PublishNow bool
}

// NoticeDeps holds dependencies for the notice orchestrators.
type NoticeDeps struct {
	GymStore    GymStoreForNotice
	NoticeStore NoticeStoreForPublish
}

var ErrNotGymOwner = errors.New("only the gym's manager can manage its notices")

// ExecuteCreateNotice creates a notice for a gym, optionally publishing it
// immediately.
// PRE: AuthorID owns the gym
// POST: Notice stored; status published when PublishNow is set
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps NoticeDeps) (string, error) {
	g, err := deps.GymStore.GetByID(ctx, input.GymID)
	if err != nil {
		return "", err
	}
	if g.OwnerAccountID != input.AuthorID {
		return "", ErrNotGymOwner
	}

	n := notice.Notice{
		ID:        uuid.New().String(),
		GymID:     input.GymID,
		Title:     input.Title,
		Content:   input.Content,
		Status:    notice.StatusDraft,
		CreatedBy: input.AuthorID,
		CreatedAt: time.Now(),
	}
	if err := n.Validate(); err != nil {
		return "", err
	}
	if input.PublishNow {
		if err := n.Publish(time.Now()); err != nil {
			return "", err
		}
	}

	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return "", err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "gym_id", n.GymID, "status", n.Status)
	return n.ID, nil
}

// ExecutePublishNotice transitions an existing draft to published.
// PRE: ActorID owns the notice's gym
// POST: Notice status is published with PublishedAt set
func ExecutePublishNotice(ctx context.Context, noticeID, actorID string, deps NoticeDeps) error {
	n, err := deps.NoticeStore.GetByID(ctx, noticeID)
	if err != nil {
		return err
	}
	g, err := deps.GymStore.GetByID(ctx, n.GymID)
	if err != nil {
		return err
	}
	if g.OwnerAccountID != actorID {
		return ErrNotGymOwner
	}

	if err := n.Publish(time.Now()); err != nil {
		return err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return err
	}

	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID, "gym_id", n.GymID)
	return nil
}
