package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sportiva/internal/adapters/http/middleware"
	"sportiva/internal/domain/account"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := middleware.NewSessionStore()

	token, err := store.Create("a1", "a1@sportiva.com.tr", []string{account.RoleMember}, account.RoleMember)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	session, ok := store.Get(token)
	if !ok {
		t.Fatal("session not found after Create")
	}
	if session.AccountID != "a1" || session.ActiveRole != account.RoleMember {
		t.Errorf("session = %+v", session)
	}

	store.Delete(token)
	if _, ok := store.Get(token); ok {
		t.Error("session still present after Delete")
	}
}

// TestSessionStore_UpdateSwitchesActiveRole covers the role-switch path:
// the role change lives only in the session, nothing else moves.
func TestSessionStore_UpdateSwitchesActiveRole(t *testing.T) {
	store := middleware.NewSessionStore()
	roles := []string{account.RoleMember, account.RoleTrainer}

	token, err := store.Create("a1", "a1@sportiva.com.tr", roles, account.RoleTrainer)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	session, _ := store.Get(token)
	session.ActiveRole = account.RoleMember
	if !store.Update(token, session) {
		t.Fatal("Update returned false for a live token")
	}

	updated, _ := store.Get(token)
	if updated.ActiveRole != account.RoleMember {
		t.Errorf("active role = %q, want member", updated.ActiveRole)
	}
	if len(updated.Roles) != 2 {
		t.Errorf("roles = %v, want unchanged pair", updated.Roles)
	}

	if store.Update("no-such-token", session) {
		t.Error("Update returned true for an unknown token")
	}
}

func TestSessionStore_ExpiredSessionIsAMiss(t *testing.T) {
	store := middleware.NewSessionStore()
	token, err := store.Create("a1", "a1@sportiva.com.tr", []string{account.RoleMember}, account.RoleMember)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Backdate the session past the 24h window.
	session, _ := store.Get(token)
	session.CreatedAt = time.Now().Add(-25 * time.Hour)
	store.Update(token, session)

	if _, ok := store.Get(token); ok {
		t.Error("expired session still returned")
	}
}

func TestSessionHoldsRole(t *testing.T) {
	s := middleware.Session{Roles: []string{account.RoleMember, account.RoleGymManager}}
	if !s.HoldsRole(account.RoleGymManager) {
		t.Error("HoldsRole missed a held role")
	}
	if s.HoldsRole(account.RoleTrainer) {
		t.Error("HoldsRole reported an unheld role")
	}
}

func TestAuthMiddlewareSetsContext(t *testing.T) {
	store := middleware.NewSessionStore()
	token, err := store.Create("a1", "a1@sportiva.com.tr", []string{account.RoleMember}, account.RoleMember)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var got middleware.Session
	var ok bool
	handler := middleware.Auth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = middleware.GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sportiva_session", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.AccountID != "a1" {
		t.Errorf("session from context = %+v, ok = %v", got, ok)
	}

	// No cookie leaves the context empty but the request flowing.
	ok = false
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if ok {
		t.Error("session present without a cookie")
	}
}
