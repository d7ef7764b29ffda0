package orchestrators_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportiva/internal/application/orchestrators"
	"sportiva/internal/domain/account"
)

func seededStore(t *testing.T, password string) *memAccountStore {
	t.Helper()
	store := newMemAccountStore()
	acct := account.Account{
		ID:        "a1",
		Email:     "deniz@sportiva.com.tr",
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	store.byEmail[acct.Email] = acct
	return store
}

func TestLogin(t *testing.T) {
	store := seededStore(t, "correct-horse-battery")
	acct := store.byEmail["deniz@sportiva.com.tr"]
	acct.IsTrainer = true
	store.byEmail[acct.Email] = acct

	result, err := orchestrators.ExecuteLogin(context.Background(), orchestrators.LoginInput{
		Email:    "deniz@sportiva.com.tr",
		Password: "correct-horse-battery",
	}, orchestrators.LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("ExecuteLogin failed: %v", err)
	}

	if result.AccountID != "a1" {
		t.Errorf("account id = %q", result.AccountID)
	}
	if len(result.Roles) != 2 || result.Roles[1] != account.RoleTrainer {
		t.Errorf("roles = %v, want [member trainer]", result.Roles)
	}
	if result.DefaultRole != account.RoleTrainer {
		t.Errorf("default role = %q, want trainer", result.DefaultRole)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := seededStore(t, "correct-horse-battery")
	deps := orchestrators.LoginDeps{AccountStore: store}

	_, err := orchestrators.ExecuteLogin(context.Background(), orchestrators.LoginInput{
		Email:    "deniz@sportiva.com.tr",
		Password: "wrong-password-here",
	}, deps)
	if !errors.Is(err, orchestrators.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if store.byEmail["deniz@sportiva.com.tr"].FailedLogins != 1 {
		t.Error("failed login not recorded")
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	deps := orchestrators.LoginDeps{AccountStore: newMemAccountStore()}

	_, err := orchestrators.ExecuteLogin(context.Background(), orchestrators.LoginInput{
		Email:    "ghost@sportiva.com.tr",
		Password: "whatever-password",
	}, deps)
	if !errors.Is(err, orchestrators.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	store := seededStore(t, "correct-horse-battery")
	deps := orchestrators.LoginDeps{AccountStore: store}
	bad := orchestrators.LoginInput{Email: "deniz@sportiva.com.tr", Password: "wrong-password-here"}

	for i := 0; i < 5; i++ {
		if _, err := orchestrators.ExecuteLogin(context.Background(), bad, deps); !errors.Is(err, orchestrators.ErrInvalidCredentials) {
			t.Fatalf("attempt %d error = %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	// Even the right password is blocked while locked.
	_, err := orchestrators.ExecuteLogin(context.Background(), orchestrators.LoginInput{
		Email:    "deniz@sportiva.com.tr",
		Password: "correct-horse-battery",
	}, deps)
	if !errors.Is(err, orchestrators.ErrAccountLocked) {
		t.Errorf("error after lockout = %v, want ErrAccountLocked", err)
	}
}

func TestChangePassword(t *testing.T) {
	store := seededStore(t, "correct-horse-battery")
	deps := orchestrators.ChangePasswordDeps{AccountStore: store}

	err := orchestrators.ExecuteChangePassword(context.Background(), orchestrators.ChangePasswordInput{
		AccountID:       "a1",
		CurrentPassword: "correct-horse-battery",
		NewPassword:     "new-stronger-password",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteChangePassword failed: %v", err)
	}

	updated := store.byEmail["deniz@sportiva.com.tr"]
	if err := updated.CheckPassword("new-stronger-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := updated.CheckPassword("correct-horse-battery"); err == nil {
		t.Error("old password still accepted")
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	store := seededStore(t, "correct-horse-battery")
	deps := orchestrators.ChangePasswordDeps{AccountStore: store}

	err := orchestrators.ExecuteChangePassword(context.Background(), orchestrators.ChangePasswordInput{
		AccountID:       "a1",
		CurrentPassword: "not-the-password",
		NewPassword:     "new-stronger-password",
	}, deps)
	if !errors.Is(err, account.ErrWrongPassword) {
		t.Errorf("error = %v, want ErrWrongPassword", err)
	}
}
