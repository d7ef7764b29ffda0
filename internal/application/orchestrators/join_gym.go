package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"sportiva/internal/domain/gym"
)

// GymStoreForJoin reads the gym being joined.
type GymStoreForJoin interface {
	GetByID(ctx context.Context, id string) (gym.Gym, error)
}

// MembershipStoreForJoin persists the membership row.
type MembershipStoreForJoin interface {
	Save(ctx context.Context, m gym.Membership) error
	Exists(ctx context.Context, accountID, gymID string) (bool, error)
}

// JoinGymInput carries input for the orchestrator.
type JoinGymInput struct {
	AccountID string
	GymID     string
}

// JoinGymDeps holds dependencies for JoinGym.
type JoinGymDeps struct {
	GymStore        GymStoreForJoin
	MembershipStore MembershipStoreForJoin
}

// ExecuteJoinGym adds the account as a member of the gym.
// PRE: GymID refers to an existing gym
// POST: Membership row exists for (AccountID, GymID)
// INVARIANT: An account joins a given gym at most once
func ExecuteJoinGym(ctx context.Context, input JoinGymInput, deps JoinGymDeps) error {
	g, err := deps.GymStore.GetByID(ctx, input.GymID)
	if err != nil {
		return err
	}

	joined, err := deps.MembershipStore.Exists(ctx, input.AccountID, input.GymID)
	if err != nil {
		return err
	}
	if joined {
		return gym.ErrAlreadyJoined
	}

	m := gym.Membership{
		AccountID: input.AccountID,
		GymID:     input.GymID,
		JoinedAt:  time.Now(),
	}
	if err := deps.MembershipStore.Save(ctx, m); err != nil {
		return err
	}

	slog.Info("gym_event", "event", "gym_joined", "account_id", input.AccountID, "gym_id", g.ID, "gym_name", g.Name)
	return nil
}
