package projections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	gymStore "sportiva/internal/adapters/storage/gym"
	"sportiva/internal/domain/account"
	"sportiva/internal/domain/gym"
	"sportiva/internal/domain/notice"
	"sportiva/internal/domain/trainer"
)

// DashboardTrainerStore defines the trainer store interface needed by the
// dashboard projection.
type DashboardTrainerStore interface {
	GetByAccountID(ctx context.Context, accountID string) (trainer.Profile, error)
}

// DashboardGymStore defines the gym store interface needed by the dashboard
// projection.
type DashboardGymStore interface {
	ListByOwner(ctx context.Context, ownerAccountID string) ([]gym.Gym, error)
}

// DashboardMembershipStore defines the membership store interface needed by
// the dashboard projection.
type DashboardMembershipStore interface {
	ListForAccount(ctx context.Context, accountID string) ([]gymStore.JoinedGym, error)
}

// DashboardNoticeStore defines the notice store interface needed by the
// dashboard projection.
type DashboardNoticeStore interface {
	ListPublishedForGyms(ctx context.Context, gymIDs []string) ([]notice.Notice, error)
}

// GetDashboardQuery carries input for the dashboard projection. ActiveRole
// is whatever the session last stored; it may name a role the account no
// longer holds.
type GetDashboardQuery struct {
	AccountID  string
	ActiveRole string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	AccountStore    RolesAccountStore
	TrainerStore    DashboardTrainerStore
	GymStore        DashboardGymStore
	MembershipStore DashboardMembershipStore
	NoticeStore     DashboardNoticeStore
}

// DashboardResult carries the role-keyed dashboard view.
type DashboardResult struct {
	Role        string   // role the dashboard was rendered for
	Roles       []string // all held roles, drives the role switcher
	Acquirable  []string // drives the "add a role" link
	DisplayName string

	// Member
	JoinedGyms []gymStore.JoinedGym
	Notices    []notice.Notice

	// Trainer
	HasProfile     bool
	TrainerProfile trainer.Profile

	// Gym manager
	OwnedGyms []gym.Gym
}

// QueryGetDashboard assembles the dashboard for the account's active role.
//
// The requested role is validated against the roles the account actually
// holds; a stale role from an old session falls back to the default role
// rather than erroring. A trainer with no profile row gets an empty trainer
// view, not an error: the registration sequence persists the profile before
// the flag, but the store read can still fail independently later.
//
// PRE: AccountID refers to an existing account
// POST: Result.Role is a role the account holds
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	acct, err := deps.AccountStore.GetByID(ctx, query.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DashboardResult{}, ErrAccountNotFound
		}
		return DashboardResult{}, err
	}

	roles := acct.Roles()
	role := query.ActiveRole
	if !acct.HoldsRole(role) {
		if role != "" {
			slog.Info("dashboard_event", "event", "stale_active_role", "account_id", acct.ID, "requested", role)
		}
		role = account.PickDefaultRole(roles)
	}

	result := DashboardResult{
		Role:        role,
		Roles:       roles,
		Acquirable:  acct.Acquirable(),
		DisplayName: acct.DisplayName(),
	}

	switch role {
	case account.RoleMember:
		joined, err := deps.MembershipStore.ListForAccount(ctx, acct.ID)
		if err != nil {
			return DashboardResult{}, err
		}
		result.JoinedGyms = joined
		gymIDs := make([]string, 0, len(joined))
		for _, j := range joined {
			gymIDs = append(gymIDs, j.GymID)
		}
		notices, err := deps.NoticeStore.ListPublishedForGyms(ctx, gymIDs)
		if err != nil {
			return DashboardResult{}, err
		}
		result.Notices = notices

	case account.RoleTrainer:
		profile, err := deps.TrainerStore.GetByAccountID(ctx, acct.ID)
		switch {
		case err == nil:
			result.HasProfile = true
			result.TrainerProfile = profile
		case errors.Is(err, sql.ErrNoRows):
			// Flag held without a profile row; render the empty state.
		default:
			return DashboardResult{}, err
		}

	case account.RoleGymManager:
		owned, err := deps.GymStore.ListByOwner(ctx, acct.ID)
		if err != nil {
			return DashboardResult{}, err
		}
		result.OwnedGyms = owned
	}

	return result, nil
}
