package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 80
)

// Role constants. Every account holds Member; Trainer and GymManager are
// derived from the persisted flags and never stored as an independent list.
const (
	RoleMember     = "member"
	RoleTrainer    = "trainer"
	RoleGymManager = "gymmanager"
)

// AcquirableRoles are the roles an account can add to itself through the
// role registration flow. Member is implicit and never acquirable.
var AcquirableRoles = []string{RoleTrainer, RoleGymManager}

// Domain errors
var (
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrNameTooLong      = errors.New("name cannot exceed 80 characters")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrInvalidRole      = errors.New("role must be one of: member, trainer, gymmanager")
	ErrRoleAlreadyHeld  = errors.New("account already holds this role")
)

// Account holds state for the Account concept. The two boolean flags are the
// sole source of truth for role membership beyond the implicit Member role.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsTrainer    bool
	IsGymManager bool
	CreatedAt    time.Time
	FailedLogins int
	LockedUntil  time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if len(a.FirstName) > MaxNameLength || len(a.LastName) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Roles derives the role set from the account flags. Member always appears
// first; no other role ever appears.
// INVARIANT: Account fields are not mutated; result is never empty
func (a *Account) Roles() []string {
	roles := []string{RoleMember}
	if a.IsTrainer {
		roles = append(roles, RoleTrainer)
	}
	if a.IsGymManager {
		roles = append(roles, RoleGymManager)
	}
	return roles
}

// HoldsRole reports whether the account currently holds the given role.
// INVARIANT: Account fields are not mutated
func (a *Account) HoldsRole(role string) bool {
	switch role {
	case RoleMember:
		return true
	case RoleTrainer:
		return a.IsTrainer
	case RoleGymManager:
		return a.IsGymManager
	}
	return false
}

// Acquirable returns the roles the account does not yet hold, in the order
// they are offered by the registration flow. Empty means nothing left to add.
// INVARIANT: Account fields are not mutated
func (a *Account) Acquirable() []string {
	var out []string
	for _, r := range AcquirableRoles {
		if !a.HoldsRole(r) {
			out = append(out, r)
		}
	}
	return out
}

// PickDefaultRole selects the highest-privilege role from a held role set:
// GymManager > Trainer > Member. Pure function, total over any role set.
func PickDefaultRole(roles []string) string {
	hasTrainer := false
	for _, r := range roles {
		if r == RoleGymManager {
			return RoleGymManager
		}
		if r == RoleTrainer {
			hasTrainer = true
		}
	}
	if hasTrainer {
		return RoleTrainer
	}
	return RoleMember
}

// IsValidRole reports whether role is a recognised role name.
func IsValidRole(role string) bool {
	return role == RoleMember || role == RoleTrainer || role == RoleGymManager
}

// DisplayName returns the name shown in the UI, falling back to the email.
// INVARIANT: Account fields are not mutated
func (a *Account) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Email
	}
	return name
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext))
	if err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the account is currently locked out.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked() bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// PRE: Account exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
	if a.FailedLogins >= 5 {
		a.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Account exists
// POST: FailedLogins is 0, LockedUntil is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}
