package projections_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"sportiva/internal/application/projections"
	"sportiva/internal/domain/account"
)

// stubAccountStore returns a fixed account or a fixed error.
type stubAccountStore struct {
	acct account.Account
	err  error
}

func (s *stubAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	if s.err != nil {
		return account.Account{}, s.err
	}
	if id != s.acct.ID {
		return account.Account{}, fmt.Errorf("account not found: %w", sql.ErrNoRows)
	}
	return s.acct, nil
}

func TestGetRoles(t *testing.T) {
	tests := []struct {
		name        string
		isTrainer   bool
		isManager   bool
		wantRoles   []string
		wantDefault string
		wantAcquire []string
	}{
		{
			name:        "plain member",
			wantRoles:   []string{account.RoleMember},
			wantDefault: account.RoleMember,
			wantAcquire: []string{account.RoleTrainer, account.RoleGymManager},
		},
		{
			name:        "trainer",
			isTrainer:   true,
			wantRoles:   []string{account.RoleMember, account.RoleTrainer},
			wantDefault: account.RoleTrainer,
			wantAcquire: []string{account.RoleGymManager},
		},
		{
			name:        "gym manager",
			isManager:   true,
			wantRoles:   []string{account.RoleMember, account.RoleGymManager},
			wantDefault: account.RoleGymManager,
			wantAcquire: []string{account.RoleTrainer},
		},
		{
			name:        "both roles leaves nothing to acquire",
			isTrainer:   true,
			isManager:   true,
			wantRoles:   []string{account.RoleMember, account.RoleTrainer, account.RoleGymManager},
			wantDefault: account.RoleGymManager,
			wantAcquire: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubAccountStore{acct: account.Account{
				ID: "a1", Email: "a1@sportiva.com.tr",
				IsTrainer: tt.isTrainer, IsGymManager: tt.isManager,
			}}
			result, err := projections.QueryGetRoles(context.Background(), "a1", projections.GetRolesDeps{AccountStore: store})
			if err != nil {
				t.Fatalf("QueryGetRoles failed: %v", err)
			}
			if !equalStrings(result.Roles, tt.wantRoles) {
				t.Errorf("roles = %v, want %v", result.Roles, tt.wantRoles)
			}
			if result.DefaultRole != tt.wantDefault {
				t.Errorf("default = %q, want %q", result.DefaultRole, tt.wantDefault)
			}
			if !equalStrings(result.Acquirable, tt.wantAcquire) {
				t.Errorf("acquirable = %v, want %v", result.Acquirable, tt.wantAcquire)
			}
			if result.Degraded {
				t.Error("degraded set on a clean read")
			}
		})
	}
}

// TestGetRoles_ReadFailureDegradesToMember verifies a failing store read
// yields the member-only set instead of an error or elevated roles.
func TestGetRoles_ReadFailureDegradesToMember(t *testing.T) {
	store := &stubAccountStore{err: errors.New("database is locked")}

	result, err := projections.QueryGetRoles(context.Background(), "a1", projections.GetRolesDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("QueryGetRoles returned error on transient failure: %v", err)
	}
	if !result.Degraded {
		t.Error("Degraded not set")
	}
	if !equalStrings(result.Roles, []string{account.RoleMember}) {
		t.Errorf("roles = %v, want member only", result.Roles)
	}
	if len(result.Acquirable) != 0 {
		t.Errorf("acquirable = %v, want empty while degraded", result.Acquirable)
	}
}

func TestGetRoles_MissingAccountIsAnError(t *testing.T) {
	store := &stubAccountStore{acct: account.Account{ID: "other"}}

	_, err := projections.QueryGetRoles(context.Background(), "a1", projections.GetRolesDeps{AccountStore: store})
	if !errors.Is(err, projections.ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
