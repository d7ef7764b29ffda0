package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	accountStore "sportiva/internal/adapters/storage/account"
	"sportiva/internal/domain/account"
	"sportiva/internal/domain/audit"
	"sportiva/internal/domain/gym"
	"sportiva/internal/domain/outbox"
	"sportiva/internal/domain/trainer"

	"github.com/google/uuid"
)

// AccountStoreForRegisterRole defines the account store interface needed by
// RegisterRole.
type AccountStoreForRegisterRole interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	SetFlags(ctx context.Context, id string, update accountStore.FlagUpdate) error
}

// TrainerStoreForRegisterRole persists the trainer profile.
type TrainerStoreForRegisterRole interface {
	Save(ctx context.Context, p trainer.Profile) error
}

// GymStoreForRegisterRole persists the manager's first gym.
type GymStoreForRegisterRole interface {
	Save(ctx context.Context, g gym.Gym) error
}

// OutboxStoreForRegisterRole queues the confirmation email.
type OutboxStoreForRegisterRole interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// RegisterRoleInput carries the role registration form. Role selects which
// of the remaining fields are read: trainer registrations use
// ExperienceYears and Specialty, gym manager registrations use GymName and
// GymCity. The unused fields are ignored, not validated.
type RegisterRoleInput struct {
	AccountID string
	Role      string

	ExperienceYears int
	Specialty       string

	GymName string
	GymCity string
}

// RegisterRoleDeps holds dependencies for RegisterRole.
type RegisterRoleDeps struct {
	AccountStore AccountStoreForRegisterRole
	TrainerStore TrainerStoreForRegisterRole
	GymStore     GymStoreForRegisterRole
	OutboxStore  OutboxStoreForRegisterRole
	AuditStore   AuditAppender
}

// RegisterRoleResult carries the outcome for session refresh and redirect.
type RegisterRoleResult struct {
	Roles       []string // derived role set after the acquisition
	DefaultRole string
}

// WriteFailedError reports which persistence step of the registration
// sequence failed. The steps before it have already been applied and are
// not rolled back; the audit log records each applied step individually.
type WriteFailedError struct {
	Step string // "trainer_profile", "trainer_flag", "manager_flag", "gym"
	Err  error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("role registration write failed at %s: %v", e.Step, e.Err)
}

func (e *WriteFailedError) Unwrap() error { return e.Err }

// Validate checks the fields selected by Role.
// PRE: none
// POST: Returns nil only if Role is acquirable and its fields pass domain rules
func (in RegisterRoleInput) Validate() error {
	switch in.Role {
	case account.RoleTrainer:
		if in.ExperienceYears < 0 {
			return trainer.ErrNegativeExperience
		}
		if in.Specialty == "" {
			return trainer.ErrEmptySpecialty
		}
		if !trainer.IsKnownSpecialty(in.Specialty) {
			return fmt.Errorf("unknown specialty %q", in.Specialty)
		}
	case account.RoleGymManager:
		if in.GymName == "" {
			return gym.ErrEmptyName
		}
		if len(in.GymName) > gym.MaxNameLength {
			return gym.ErrNameTooLong
		}
		if !gym.IsValidCity(in.GymCity) {
			return gym.ErrInvalidCity
		}
	default:
		return account.ErrInvalidRole
	}
	return nil
}

// ExecuteRegisterRole acquires an additional role for an existing account.
//
// The persistence order differs per role and is deliberate:
//   - trainer: the profile row is written first, then the is_trainer flag.
//     If the flag write fails the profile exists but the role is not held.
//   - gym manager: the is_gymmanager flag is set first, then the gym row.
//     If the gym write fails the role is held with no gym yet.
//
// Neither path rolls back the first write when the second fails; the
// partially applied state is valid on its own and each write is audited.
//
// PRE: AccountID refers to an existing account; Role passes Validate
// POST: On success the account holds Role and the role-specific record exists
// INVARIANT: An already-held role is rejected before any write
func ExecuteRegisterRole(ctx context.Context, input RegisterRoleInput, deps RegisterRoleDeps) (RegisterRoleResult, error) {
	if err := input.Validate(); err != nil {
		return RegisterRoleResult{}, err
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return RegisterRoleResult{}, err
	}
	if acct.HoldsRole(input.Role) {
		return RegisterRoleResult{}, account.ErrRoleAlreadyHeld
	}

	switch input.Role {
	case account.RoleTrainer:
		err = registerTrainer(ctx, acct, input, deps)
	case account.RoleGymManager:
		err = registerGymManager(ctx, acct, input, deps)
	}
	if err != nil {
		slog.Error("role_event", "event", "register_failed", "account_id", acct.ID, "role", input.Role, "error", err)
		return RegisterRoleResult{}, err
	}

	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryRole,
		Action:       audit.ActionRoleAcquire,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "acquired role " + input.Role,
	})
	enqueueRoleEmail(ctx, deps.OutboxStore, acct, input.Role)
	slog.Info("role_event", "event", "role_registered", "account_id", acct.ID, "role", input.Role)

	// Re-derive from the store so the session reflects what was written.
	refreshed, err := deps.AccountStore.GetByID(ctx, acct.ID)
	if err != nil {
		refreshed = acct
	}
	roles := refreshed.Roles()
	if !refreshed.HoldsRole(input.Role) {
		roles = append(roles, input.Role)
	}
	return RegisterRoleResult{Roles: roles, DefaultRole: account.PickDefaultRole(roles)}, nil
}

// registerTrainer writes the profile, then sets the flag.
func registerTrainer(ctx context.Context, acct account.Account, input RegisterRoleInput, deps RegisterRoleDeps) error {
	profile := trainer.Profile{
		ID:              uuid.New().String(),
		AccountID:       acct.ID,
		ExperienceYears: input.ExperienceYears,
		Specialty:       input.Specialty,
		CreatedAt:       time.Now(),
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := deps.TrainerStore.Save(ctx, profile); err != nil {
		return &WriteFailedError{Step: "trainer_profile", Err: err}
	}
	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryRole,
		Action:       audit.ActionCreate,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   profile.ID,
		ResourceType: "trainer_profile",
		Description:  "trainer profile created",
	})

	yes := true
	if err := deps.AccountStore.SetFlags(ctx, acct.ID, accountStore.FlagUpdate{IsTrainer: &yes}); err != nil {
		return &WriteFailedError{Step: "trainer_flag", Err: err}
	}
	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryRole,
		Action:       audit.ActionFlagSet,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "is_trainer set",
	})
	return nil
}

// registerGymManager sets the flag, then writes the gym.
func registerGymManager(ctx context.Context, acct account.Account, input RegisterRoleInput, deps RegisterRoleDeps) error {
	yes := true
	if err := deps.AccountStore.SetFlags(ctx, acct.ID, accountStore.FlagUpdate{IsGymManager: &yes}); err != nil {
		return &WriteFailedError{Step: "manager_flag", Err: err}
	}
	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryRole,
		Action:       audit.ActionFlagSet,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   acct.ID,
		ResourceType: "account",
		Description:  "is_gymmanager set",
	})

	g := gym.Gym{
		ID:             uuid.New().String(),
		Name:           input.GymName,
		City:           input.GymCity,
		OwnerAccountID: acct.ID,
		CreatedAt:      time.Now(),
	}
	if err := g.Validate(); err != nil {
		return &WriteFailedError{Step: "gym", Err: err}
	}
	if err := deps.GymStore.Save(ctx, g); err != nil {
		return &WriteFailedError{Step: "gym", Err: err}
	}
	recordAudit(ctx, deps.AuditStore, audit.Event{
		Category:     audit.CategoryGym,
		Action:       audit.ActionCreate,
		Severity:     audit.SeverityInfo,
		ActorID:      acct.ID,
		ActorEmail:   acct.Email,
		ResourceID:   g.ID,
		ResourceType: "gym",
		Description:  "gym created: " + g.Name,
	})
	return nil
}

// roleEmailPayload is the outbox payload for the confirmation email.
type roleEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func enqueueRoleEmail(ctx context.Context, store OutboxStoreForRegisterRole, acct account.Account, role string) {
	if store == nil {
		return
	}
	payload, err := json.Marshal(roleEmailPayload{
		To:      acct.Email,
		Subject: "Sportiva: new role added",
		Body: fmt.Sprintf("Hello %s, the %s role was added to your account. It is available on your dashboard now.",
			acct.DisplayName(), role),
	})
	if err != nil {
		slog.Warn("outbox_enqueue_failed", "account_id", acct.ID, "error", err)
		return
	}
	entry := outbox.Entry{
		ID:          uuid.New().String(),
		ActionType:  outbox.ActionTypeEmail,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   time.Now(),
	}
	if err := store.Save(ctx, entry); err != nil {
		// The role was acquired; a lost email is not worth failing the flow.
		slog.Warn("outbox_enqueue_failed", "account_id", acct.ID, "error", err)
	}
}
