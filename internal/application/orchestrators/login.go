package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"sportiva/internal/domain/account"
	"sportiva/internal/domain/audit"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login. Roles is the full
// derived role set; DefaultRole is the role the dashboard opens with.
type LoginResult struct {
	AccountID   string
	Email       string
	Roles       []string
	DefaultRole string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	AuditStore   AuditAppender
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Valid email and password provided
// POST: Returns derived roles on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login, reset failed attempts
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	roles := acct.Roles()
	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategorySecurity,
		Action:       audit.ActionLogin,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "login succeeded",
	})
	slog.Info("auth_event", "event", "login_success", "email", input.Email, "roles", roles)

	return LoginResult{
		AccountID:   acct.ID,
		Email:       acct.Email,
		Roles:       roles,
		DefaultRole: account.PickDefaultRole(roles),
	}, nil
}
