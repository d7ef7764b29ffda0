package orchestrators

import (
	"context"
	"log/slog"

	"sportiva/internal/domain/account"
	"sportiva/internal/domain/audit"
)

// AccountStoreForPassword defines the store interface needed by ChangePassword.
type AccountStoreForPassword interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ChangePasswordInput carries input for the orchestrator.
type ChangePasswordInput struct {
	AccountID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	AccountStore AccountStoreForPassword
	AuditStore   AuditAppender
}

// ExecuteChangePassword verifies the current password and replaces it.
// PRE: AccountID refers to an existing account
// POST: Password hash replaced; failed-login counter reset
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	if err := acct.CheckPassword(input.CurrentPassword); err != nil {
		slog.Info("auth_event", "event", "password_change_failed", "account_id", input.AccountID, "reason", "wrong_password")
		return account.ErrWrongPassword
	}

	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	acct.ResetFailedLogins()

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategorySecurity,
		Action:       audit.ActionUpdate,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "password changed",
	})
	slog.Info("auth_event", "event", "password_changed", "account_id", input.AccountID)
	return nil
}
