package projections_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	gymStore "sportiva/internal/adapters/storage/gym"
	"sportiva/internal/application/projections"
	"sportiva/internal/domain/account"
	"sportiva/internal/domain/gym"
	"sportiva/internal/domain/notice"
	"sportiva/internal/domain/trainer"
)

type stubTrainerStore struct {
	profiles map[string]trainer.Profile
}

func (s *stubTrainerStore) GetByAccountID(_ context.Context, accountID string) (trainer.Profile, error) {
	p, ok := s.profiles[accountID]
	if !ok {
		return trainer.Profile{}, fmt.Errorf("trainer profile not found: %w", sql.ErrNoRows)
	}
	return p, nil
}

type stubGymListStore struct {
	byOwner map[string][]gym.Gym
}

func (s *stubGymListStore) ListByOwner(_ context.Context, owner string) ([]gym.Gym, error) {
	return s.byOwner[owner], nil
}

type stubMembershipList struct {
	joined map[string][]gymStore.JoinedGym
}

func (s *stubMembershipList) ListForAccount(_ context.Context, accountID string) ([]gymStore.JoinedGym, error) {
	return s.joined[accountID], nil
}

type stubNoticeList struct {
	published []notice.Notice
	gotGymIDs []string
}

func (s *stubNoticeList) ListPublishedForGyms(_ context.Context, gymIDs []string) ([]notice.Notice, error) {
	s.gotGymIDs = gymIDs
	if len(gymIDs) == 0 {
		return nil, nil
	}
	return s.published, nil
}

func dashboardDeps(acct account.Account) (projections.GetDashboardDeps, *stubTrainerStore, *stubGymListStore, *stubMembershipList, *stubNoticeList) {
	trainers := &stubTrainerStore{profiles: map[string]trainer.Profile{}}
	gyms := &stubGymListStore{byOwner: map[string][]gym.Gym{}}
	members := &stubMembershipList{joined: map[string][]gymStore.JoinedGym{}}
	notices := &stubNoticeList{}
	deps := projections.GetDashboardDeps{
		AccountStore:    &stubAccountStore{acct: acct},
		TrainerStore:    trainers,
		GymStore:        gyms,
		MembershipStore: members,
		NoticeStore:     notices,
	}
	return deps, trainers, gyms, members, notices
}

func TestGetDashboard_MemberView(t *testing.T) {
	acct := account.Account{ID: "a1", Email: "a1@sportiva.com.tr"}
	deps, _, _, members, notices := dashboardDeps(acct)
	members.joined["a1"] = []gymStore.JoinedGym{
		{GymID: "g1", GymName: "Sportiva Merkez", GymCity: "Ankara"},
	}
	notices.published = []notice.Notice{
		{ID: "n1", GymID: "g1", Title: "Acilis", Status: notice.StatusPublished},
	}

	result, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleMember,
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}

	if result.Role != account.RoleMember {
		t.Errorf("role = %q, want member", result.Role)
	}
	if len(result.JoinedGyms) != 1 || result.JoinedGyms[0].GymName != "Sportiva Merkez" {
		t.Errorf("joined gyms = %v", result.JoinedGyms)
	}
	if len(result.Notices) != 1 {
		t.Errorf("notices = %v, want 1", result.Notices)
	}
	if len(notices.gotGymIDs) != 1 || notices.gotGymIDs[0] != "g1" {
		t.Errorf("notice lookup used gym ids %v, want [g1]", notices.gotGymIDs)
	}
}

func TestGetDashboard_TrainerView(t *testing.T) {
	acct := account.Account{ID: "a1", Email: "a1@sportiva.com.tr", IsTrainer: true}
	deps, trainers, _, _, _ := dashboardDeps(acct)
	trainers.profiles["a1"] = trainer.Profile{
		ID: "p1", AccountID: "a1", ExperienceYears: 4, Specialty: "Yoga", CreatedAt: time.Now(),
	}

	result, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleTrainer,
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}

	if !result.HasProfile || result.TrainerProfile.Specialty != "Yoga" {
		t.Errorf("trainer view = %+v", result)
	}
}

// TestGetDashboard_TrainerWithoutProfile covers the half-applied
// registration state: flag held, no profile row. The dashboard renders the
// empty trainer view instead of failing.
func TestGetDashboard_TrainerWithoutProfile(t *testing.T) {
	acct := account.Account{ID: "a1", Email: "a1@sportiva.com.tr", IsTrainer: true}
	deps, _, _, _, _ := dashboardDeps(acct)

	result, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleTrainer,
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}
	if result.HasProfile {
		t.Error("HasProfile = true without a profile row")
	}
	if result.Role != account.RoleTrainer {
		t.Errorf("role = %q, want trainer", result.Role)
	}
}

func TestGetDashboard_ManagerView(t *testing.T) {
	acct := account.Account{ID: "a1", Email: "a1@sportiva.com.tr", IsGymManager: true}
	deps, _, gyms, _, _ := dashboardDeps(acct)
	gyms.byOwner["a1"] = []gym.Gym{
		{ID: "g1", Name: "Sportiva Merkez", City: "Ankara", OwnerAccountID: "a1"},
	}

	result, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleGymManager,
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}
	if len(result.OwnedGyms) != 1 || result.OwnedGyms[0].ID != "g1" {
		t.Errorf("owned gyms = %v", result.OwnedGyms)
	}
}

// TestGetDashboard_StaleActiveRoleFallsBack verifies a session role the
// account no longer holds is replaced with the default role.
func TestGetDashboard_StaleActiveRoleFallsBack(t *testing.T) {
	acct := account.Account{ID: "a1", Email: "a1@sportiva.com.tr", IsTrainer: true}
	deps, trainers, _, _, _ := dashboardDeps(acct)
	trainers.profiles["a1"] = trainer.Profile{ID: "p1", AccountID: "a1", Specialty: "Pilates"}

	result, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleGymManager, // never held
	}, deps)
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}
	if result.Role != account.RoleTrainer {
		t.Errorf("role = %q, want fallback to trainer", result.Role)
	}
}

func TestGetDashboard_MissingAccount(t *testing.T) {
	deps, _, _, _, _ := dashboardDeps(account.Account{ID: "other"})

	_, err := projections.QueryGetDashboard(context.Background(), projections.GetDashboardQuery{
		AccountID: "a1", ActiveRole: account.RoleMember,
	}, deps)
	if !errors.Is(err, projections.ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}
