package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"rosterboard/backend/internal/dto"
	"rosterboard/backend/internal/model"
	"rosterboard/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo, *mockTeamRepo) {
	userRepo := newMockUserRepo()
	teamRepo := newMockTeamRepo()
	repo := &repository.Repository{
		User:        userRepo,
		Team:        teamRepo,
		RosterEntry: newMockRosterEntryRepo(userRepo),
		ClockRecord: newMockClockRecordRepo(userRepo),
	}
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo, teamRepo
}

// ── GetByID 测试 ──

func TestUserService_GetByID_Success(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	teamID := "t1"
	userRepo.users["uid-001"] = &model.User{
		UserID: "uid-001",
		Name:   "Sarah Davis",
		Role:   model.RoleStaff,
		TeamID: &teamID,
		Team:   &model.Team{TeamID: teamID, Name: "Development Team"},
	}

	result, err := svc.GetByID(context.Background(), "uid-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Name != "Sarah Davis" {
		t.Errorf("期望Name=Sarah Davis，实际=%s", result.Name)
	}
	if result.Team == nil || result.Team.Name != "Development Team" {
		t.Error("期望包含团队信息")
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestUserService_List_FilterByRole(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	createTestStaff(userRepo, "uid-001", "Sarah Davis", "t1")
	createTestStaff(userRepo, "uid-002", "James Wilson", "t1")
	userRepo.users["uid-lead"] = &model.User{UserID: "uid-lead", Name: "Emma Johnson", Role: model.RoleTeamLeader}

	req := &dto.UserListRequest{Role: model.RoleStaff}
	req.Page = 1
	req.PageSize = 20

	users, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("期望2名员工，实际 total=%d len=%d", total, len(users))
	}
}

// ── 团队测试 ──

func TestUserService_ListTeams(t *testing.T) {
	svc, _, teamRepo := setupTestUserService()
	leaderID := "uid-lead"
	teamRepo.teams["t1"] = &model.Team{
		TeamID:   "t1",
		Name:     "Development Team",
		LeaderID: &leaderID,
		Leader:   &model.User{UserID: leaderID, Name: "Emma Johnson", Role: model.RoleTeamLeader},
	}
	teamRepo.teams["t2"] = &model.Team{TeamID: "t2", Name: "Support Team"}

	teams, err := svc.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams 应成功: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("期望2个团队，实际=%d", len(teams))
	}
	// 按名称排序：Development Team 在前
	if teams[0].Leader == nil || teams[0].Leader.Name != "Emma Johnson" {
		t.Error("期望包含组长信息")
	}
}

func TestUserService_GetTeamMembers(t *testing.T) {
	svc, userRepo, teamRepo := setupTestUserService()
	teamRepo.teams["t1"] = &model.Team{TeamID: "t1", Name: "Development Team"}
	createTestStaff(userRepo, "uid-001", "Sarah Davis", "t1")
	createTestStaff(userRepo, "uid-002", "James Wilson", "t1")
	createTestStaff(userRepo, "uid-003", "Linda Taylor", "t2")

	members, err := svc.GetTeamMembers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTeamMembers 应成功: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("期望2名成员，实际=%d", len(members))
	}
}

func TestUserService_GetTeamMembers_TeamNotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.GetTeamMembers(context.Background(), "missing")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("期望 ErrTeamNotFound，实际: %v", err)
	}
}
