// Package projections contains read-side queries. Projections never write;
// they assemble view data from the stores.
package projections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"sportiva/internal/domain/account"
)

// RolesAccountStore defines the account store interface needed by the role
// projection.
type RolesAccountStore interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

// GetRolesDeps holds dependencies for the role projection.
type GetRolesDeps struct {
	AccountStore RolesAccountStore
}

// RolesResult carries the derived role view of one account.
type RolesResult struct {
	Roles       []string // always contains member
	DefaultRole string
	Acquirable  []string // roles the account could still register for
	Degraded    bool     // true when a read failure forced the member-only fallback
}

var ErrAccountNotFound = errors.New("account not found")

// QueryGetRoles derives the role set for an account.
//
// A missing account is an error: the caller is holding a session for an
// account that no longer exists. A failing read is not: the projection
// degrades to the member-only set so the account keeps its baseline access
// instead of being granted roles the store could not confirm.
//
// PRE: accountID is non-empty
// POST: Roles contains member; flags add trainer and gymmanager
func QueryGetRoles(ctx context.Context, accountID string, deps GetRolesDeps) (RolesResult, error) {
	acct, err := deps.AccountStore.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RolesResult{}, ErrAccountNotFound
		}
		slog.Warn("role_resolve_degraded", "account_id", accountID, "error", err)
		roles := []string{account.RoleMember}
		return RolesResult{
			Roles:       roles,
			DefaultRole: account.RoleMember,
			Acquirable:  nil,
			Degraded:    true,
		}, nil
	}

	roles := acct.Roles()
	return RolesResult{
		Roles:       roles,
		DefaultRole: account.PickDefaultRole(roles),
		Acquirable:  acct.Acquirable(),
	}, nil
}
