package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"rosterboard/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Name
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role, teamID string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if teamID != "" && (u.TeamID == nil || *u.TeamID != teamID) {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// teamOf 查询用户所属团队（mock 内部用）
func (m *mockUserRepo) teamOf(userID string) string {
	if u, ok := m.users[userID]; ok && u.TeamID != nil {
		return *u.TeamID
	}
	return ""
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams map[string]*model.Team
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = "team-" + team.Name
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) List(_ context.Context) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock RosterEntryRepository ──

type mockRosterEntryRepo struct {
	entries map[string]*model.RosterEntry
	users   *mockUserRepo // 团队过滤时查询用户归属
	seq     int
}

func newMockRosterEntryRepo(users *mockUserRepo) *mockRosterEntryRepo {
	return &mockRosterEntryRepo{entries: make(map[string]*model.RosterEntry), users: users}
}

func (m *mockRosterEntryRepo) Create(_ context.Context, entry *model.RosterEntry) error {
	if entry.RosterEntryID == "" {
		m.seq++
		entry.RosterEntryID = fmt.Sprintf("roster-%03d", m.seq)
	}
	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = now
	}
	if entry.Version == 0 {
		entry.Version = 1
	}
	m.entries[entry.RosterEntryID] = entry
	return nil
}

func (m *mockRosterEntryRepo) GetByID(_ context.Context, id string) (*model.RosterEntry, error) {
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func inRange(at time.Time, from, to *time.Time) bool {
	if from != nil && at.Before(*from) {
		return false
	}
	if to != nil && !at.Before(*to) {
		return false
	}
	return true
}

func (m *mockRosterEntryRepo) ListByUser(_ context.Context, userID string, from, to *time.Time) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.UserID == userID && inRange(e.StartAt, from, to) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (m *mockRosterEntryRepo) ListByTeam(_ context.Context, teamID string, from, to *time.Time) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if m.users.teamOf(e.UserID) == teamID && inRange(e.StartAt, from, to) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (m *mockRosterEntryRepo) ListPending(_ context.Context, teamID string) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.Status != model.StatusPending {
			continue
		}
		if teamID != "" && m.users.teamOf(e.UserID) != teamID {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.Before(result[j].UpdatedAt) })
	return result, nil
}

func (m *mockRosterEntryRepo) Update(_ context.Context, entry *model.RosterEntry) error {
	stored, ok := m.entries[entry.RosterEntryID]
	if !ok || stored.Version != entry.Version {
		return gorm.ErrRecordNotFound
	}
	entry.Version++
	copied := *entry
	m.entries[entry.RosterEntryID] = &copied
	return nil
}

func (m *mockRosterEntryRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.entries, id)
	return nil
}

// ── Mock ClockRecordRepository ──

type mockClockRecordRepo struct {
	records map[string]*model.ClockRecord
	users   *mockUserRepo
	seq     int
}

func newMockClockRecordRepo(users *mockUserRepo) *mockClockRecordRepo {
	return &mockClockRecordRepo{records: make(map[string]*model.ClockRecord), users: users}
}

func (m *mockClockRecordRepo) Create(_ context.Context, record *model.ClockRecord) error {
	if record.ClockRecordID == "" {
		m.seq++
		record.ClockRecordID = fmt.Sprintf("clock-%03d", m.seq)
	}
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}
	if record.Version == 0 {
		record.Version = 1
	}
	m.records[record.ClockRecordID] = record
	return nil
}

func (m *mockClockRecordRepo) GetByID(_ context.Context, id string) (*model.ClockRecord, error) {
	if r, ok := m.records[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClockRecordRepo) GetOpenByUser(_ context.Context, userID string) (*model.ClockRecord, error) {
	var open *model.ClockRecord
	for _, r := range m.records {
		if r.UserID != userID || r.ClockOutTime != nil || r.IsDateBack {
			continue
		}
		if open == nil || r.ClockInTime.After(open.ClockInTime) {
			open = r
		}
	}
	if open == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *open
	return &copied, nil
}

func (m *mockClockRecordRepo) ListByUser(_ context.Context, userID string, from, to *time.Time) ([]model.ClockRecord, error) {
	var result []model.ClockRecord
	for _, r := range m.records {
		if r.UserID == userID && inRange(r.ClockInTime, from, to) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockInTime.After(result[j].ClockInTime) })
	return result, nil
}

func (m *mockClockRecordRepo) ListPendingBackdated(_ context.Context, teamID string) ([]model.ClockRecord, error) {
	var result []model.ClockRecord
	for _, r := range m.records {
		if !r.IsDateBack || r.Status != model.StatusPending {
			continue
		}
		if teamID != "" && m.users.teamOf(r.UserID) != teamID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.Before(result[j].UpdatedAt) })
	return result, nil
}

func (m *mockClockRecordRepo) Update(_ context.Context, record *model.ClockRecord) error {
	stored, ok := m.records[record.ClockRecordID]
	if !ok || stored.Version != record.Version {
		return gorm.ErrRecordNotFound
	}
	record.Version++
	copied := *record
	m.records[record.ClockRecordID] = &copied
	return nil
}
