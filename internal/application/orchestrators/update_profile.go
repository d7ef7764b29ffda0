package orchestrators

import (
	"context"
	"log/slog"

	"sportiva/internal/domain/account"
)

// AccountStoreForUpdate defines the store interface needed by UpdateProfile.
type AccountStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// UpdateProfileInput carries input for the orchestrator.
type UpdateProfileInput struct {
	AccountID string
	FirstName string
	LastName  string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	AccountStore AccountStoreForUpdate
}

// ExecuteUpdateProfile updates the account's display names. Email is
// immutable once the account exists.
// PRE: AccountID refers to an existing account
// POST: Names updated and validated against domain rules
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	acct.FirstName = input.FirstName
	acct.LastName = input.LastName
	if err := acct.Validate(); err != nil {
		return err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("account_event", "event", "profile_updated", "account_id", input.AccountID)
	return nil
}
