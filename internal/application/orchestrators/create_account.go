package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sportiva/internal/domain/account"
	"sportiva/internal/domain/audit"

	"github.com/google/uuid"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	AuditStore   AuditAppender
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// ExecuteCreateAccount coordinates account creation. New accounts hold no
// role flags; every account is a member by virtue of existing.
// PRE: Valid email, password >= 12 chars
// POST: Account created with hashed password and both role flags false
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	if input.Email == "" {
		return "", account.ErrEmptyEmail
	}
	if input.Password == "" {
		return "", account.ErrEmptyPassword
	}

	_, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: time.Now(),
	}

	if err := acct.Validate(); err != nil {
		return "", err
	}

	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryAccount,
		Action:       audit.ActionCreate,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "account created",
	})
	slog.Info("auth_event", "event", "account_created", "email", input.Email)

	return acct.ID, nil
}

// ExecuteSeedAdmin creates a bootstrap gym manager account if no accounts
// exist, so a fresh deployment has someone who can create gyms.
// PRE: Database is initialized
// POST: Manager account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist, skip seeding
	}

	id, err := ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:     email,
		Password:  password,
		FirstName: "Sportiva",
		LastName:  "Admin",
	}, deps)
	if err != nil {
		return err
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	acct.IsGymManager = true
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email, "account_id", id)
	return nil
}
