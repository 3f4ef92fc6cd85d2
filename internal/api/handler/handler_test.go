package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rosterboard/backend/internal/dto"
	"rosterboard/backend/internal/service"
	"rosterboard/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock UserService ──

type mockUserService struct {
	getResult     *dto.UserResponse
	getErr        error
	listResult    []dto.UserResponse
	listTotal     int64
	listErr       error
	teamsResult   []dto.TeamResponse
	teamsErr      error
	membersResult []dto.UserResponse
	membersErr    error
}

func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockUserService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockUserService) ListTeams(_ context.Context) ([]dto.TeamResponse, error) {
	return m.teamsResult, m.teamsErr
}
func (m *mockUserService) GetTeamMembers(_ context.Context, _ string) ([]dto.UserResponse, error) {
	return m.membersResult, m.membersErr
}

// ── Mock RosterService ──

type mockRosterService struct {
	createResult *dto.RosterEntryResponse
	createErr    error
	getResult    *dto.RosterEntryResponse
	getErr       error
	mineResult   []dto.RosterEntryResponse
	mineErr      error
	teamResult   []dto.RosterEntryResponse
	teamErr      error
	updateResult *dto.RosterEntryResponse
	updateErr    error
	deleteErr    error
	submitResult *dto.RosterEntryResponse
	submitErr    error
	gridResult   *dto.DayGridResponse
	gridErr      error
}

func (m *mockRosterService) Create(_ context.Context, _ *dto.CreateRosterEntryRequest, _ string) (*dto.RosterEntryResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRosterService) GetByID(_ context.Context, _ string) (*dto.RosterEntryResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRosterService) ListMine(_ context.Context, _ string, _ *dto.RosterListRequest) ([]dto.RosterEntryResponse, error) {
	return m.mineResult, m.mineErr
}
func (m *mockRosterService) ListByTeam(_ context.Context, _ string, _ *dto.RosterListRequest) ([]dto.RosterEntryResponse, error) {
	return m.teamResult, m.teamErr
}
func (m *mockRosterService) Update(_ context.Context, _ string, _ *dto.UpdateRosterEntryRequest, _ string) (*dto.RosterEntryResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockRosterService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockRosterService) SubmitForApproval(_ context.Context, _ string, _ string) (*dto.RosterEntryResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockRosterService) DayGrid(_ context.Context, _ *dto.DayGridRequest, _ string) (*dto.DayGridResponse, error) {
	return m.gridResult, m.gridErr
}

// ── Mock ClockService ──

type mockClockService struct {
	inResult      *dto.ClockRecordResponse
	inErr         error
	outResult     *dto.ClockRecordResponse
	outErr        error
	backResult    *dto.ClockRecordResponse
	backErr       error
	statusResult  *dto.ClockStatusResponse
	statusErr     error
	recordsResult []dto.ClockRecordResponse
	recordsErr    error
	activeResult  *dto.ActiveClockResponse
	activeErr     error
}

func (m *mockClockService) ClockIn(_ context.Context, _ string) (*dto.ClockRecordResponse, error) {
	return m.inResult, m.inErr
}
func (m *mockClockService) ClockOut(_ context.Context, _ string) (*dto.ClockRecordResponse, error) {
	return m.outResult, m.outErr
}
func (m *mockClockService) Backdate(_ context.Context, _ *dto.BackdateClockRequest, _ string) (*dto.ClockRecordResponse, error) {
	return m.backResult, m.backErr
}
func (m *mockClockService) Status(_ context.Context, _ string) (*dto.ClockStatusResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockClockService) ListRecords(_ context.Context, _ string, _ *dto.ClockRecordListRequest) ([]dto.ClockRecordResponse, error) {
	return m.recordsResult, m.recordsErr
}
func (m *mockClockService) ActiveForTeam(_ context.Context, _ string) (*dto.ActiveClockResponse, error) {
	return m.activeResult, m.activeErr
}

// ── Mock ApprovalService ──

type mockApprovalService struct {
	pendingResult *dto.PendingApprovalsResponse
	pendingErr    error
	rosterResult  *dto.RosterEntryResponse
	rosterErr     error
	clockResult   *dto.ClockRecordResponse
	clockErr      error
}

func (m *mockApprovalService) ListPending(_ context.Context, _ *service.Caller) (*dto.PendingApprovalsResponse, error) {
	return m.pendingResult, m.pendingErr
}
func (m *mockApprovalService) ApproveRoster(_ context.Context, _ string, _ *service.Caller) (*dto.RosterEntryResponse, error) {
	return m.rosterResult, m.rosterErr
}
func (m *mockApprovalService) RejectRoster(_ context.Context, _ string, _ string, _ *service.Caller) (*dto.RosterEntryResponse, error) {
	return m.rosterResult, m.rosterErr
}
func (m *mockApprovalService) ApproveClock(_ context.Context, _ string, _ *service.Caller) (*dto.ClockRecordResponse, error) {
	return m.clockResult, m.clockErr
}
func (m *mockApprovalService) RejectClock(_ context.Context, _ string, _ string, _ *service.Caller) (*dto.ClockRecordResponse, error) {
	return m.clockResult, m.clockErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	xlsxName string
	xlsxErr  error
	ics      string
	icsName  string
	icsErr   error
}

func (m *mockExportService) ExportTeamWeekXLSX(_ context.Context, _ string, _ time.Time) (*bytes.Buffer, string, error) {
	return m.buf, m.xlsxName, m.xlsxErr
}
func (m *mockExportService) ExportUserICS(_ context.Context, _ string) (string, string, error) {
	return m.ics, m.icsName, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setIdentity(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "staff")
	c.Set("team_id", "test-team-id")
}

func setReviewerIdentity(c *gin.Context) {
	c.Set("user_id", "test-lead-id")
	c.Set("role", "team_leader")
	c.Set("team_id", "test-team-id")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// RosterHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRosterHandler_Create_Success(t *testing.T) {
	mock := &mockRosterService{
		createResult: &dto.RosterEntryResponse{ID: "roster-001", Status: "pending"},
	}
	h := NewRosterHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/roster", jsonBody(dto.CreateRosterEntryRequest{
		Title:    "Team Meeting",
		Start:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local),
		End:      time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local),
		Location: "office",
		Tasks:    "Weekly team meeting",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/roster", func(c *gin.Context) {
		setIdentity(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestRosterHandler_Create_BadJSON(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/roster", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/roster", func(c *gin.Context) {
		setIdentity(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRosterHandler_Create_Unauthenticated(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/roster", jsonBody(dto.CreateRosterEntryRequest{
		Title:    "Team Meeting",
		Start:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local),
		End:      time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local),
		Location: "office",
		Tasks:    "Weekly team meeting",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/roster", h.Create) // 未注入身份
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRosterHandler_Update_NotOwner(t *testing.T) {
	mock := &mockRosterService{updateErr: service.ErrNotEntryOwner}
	h := NewRosterHandler(mock)

	w := httptest.NewRecorder()
	title := "Hijacked"
	req := httptest.NewRequest("PUT", "/roster/roster-001", jsonBody(dto.UpdateRosterEntryRequest{Title: &title}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/roster/:id", func(c *gin.Context) {
		setIdentity(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13106 {
		t.Errorf("expected error code 13106, got %d", resp.Code)
	}
}

func TestRosterHandler_Delete_ApprovedConflict(t *testing.T) {
	mock := &mockRosterService{deleteErr: service.ErrEntryApproved}
	h := NewRosterHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/roster/roster-001", nil)

	r := gin.New()
	r.DELETE("/roster/:id", func(c *gin.Context) {
		setIdentity(c)
		h.Delete(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestRosterHandler_DayGrid_MissingDate(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/roster/day-grid", nil)

	r := gin.New()
	r.GET("/roster/day-grid", func(c *gin.Context) {
		setIdentity(c)
		h.DayGrid(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRosterHandler_DayGrid_Success(t *testing.T) {
	mock := &mockRosterService{
		gridResult: &dto.DayGridResponse{
			Date:         "2025-03-10",
			DayStartHour: 9,
			DayEndHour:   19,
			Entries: []dto.PositionedEntryResponse{
				{StartPercent: 10, WidthPercent: 10},
			},
		},
	}
	h := NewRosterHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/roster/day-grid?date=2025-03-10", nil)

	r := gin.New()
	r.GET("/roster/day-grid", func(c *gin.Context) {
		setIdentity(c)
		h.DayGrid(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ClockHandler Tests
// ═══════════════════════════════════════════════════════════

func TestClockHandler_ClockIn_Success(t *testing.T) {
	mock := &mockClockService{
		inResult: &dto.ClockRecordResponse{ID: "clock-001", Status: "approved"},
	}
	h := NewClockHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/clock/in", nil)

	r := gin.New()
	r.POST("/clock/in", func(c *gin.Context) {
		setIdentity(c)
		h.ClockIn(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestClockHandler_ClockIn_AlreadyClockedIn(t *testing.T) {
	mock := &mockClockService{inErr: service.ErrAlreadyClockedIn}
	h := NewClockHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/clock/in", nil)

	r := gin.New()
	r.POST("/clock/in", func(c *gin.Context) {
		setIdentity(c)
		h.ClockIn(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14101 {
		t.Errorf("expected error code 14101, got %d", resp.Code)
	}
}

func TestClockHandler_ClockOut_NoOpenSession(t *testing.T) {
	mock := &mockClockService{outErr: service.ErrNoOpenClockRecord}
	h := NewClockHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/clock/out", nil)

	r := gin.New()
	r.POST("/clock/out", func(c *gin.Context) {
		setIdentity(c)
		h.ClockOut(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestClockHandler_Backdate_MissingNotes(t *testing.T) {
	h := NewClockHandler(&mockClockService{})

	w := httptest.NewRecorder()
	// notes 是必填字段，binding 层直接拒绝
	req := httptest.NewRequest("POST", "/clock/backdate", jsonBody(map[string]interface{}{
		"kind":      "in",
		"timestamp": "2025-03-10T09:00:00+08:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/clock/backdate", func(c *gin.Context) {
		setIdentity(c)
		h.Backdate(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ApprovalHandler Tests
// ═══════════════════════════════════════════════════════════

func TestApprovalHandler_ListPending_Success(t *testing.T) {
	mock := &mockApprovalService{
		pendingResult: &dto.PendingApprovalsResponse{
			RosterEntries: []dto.RosterEntryResponse{{ID: "roster-001", Status: "pending"}},
			ClockRecords:  []dto.ClockRecordResponse{},
		},
	}
	h := NewApprovalHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/approvals/pending", nil)

	r := gin.New()
	r.GET("/approvals/pending", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.ListPending(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestApprovalHandler_RejectRoster_MissingReason(t *testing.T) {
	h := NewApprovalHandler(&mockApprovalService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/approvals/roster/roster-001/reject", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/approvals/roster/:id/reject", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.RejectRoster(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApprovalHandler_ApproveRoster_OutsideTeamScope(t *testing.T) {
	mock := &mockApprovalService{rosterErr: service.ErrOutsideTeamScope}
	h := NewApprovalHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/approvals/roster/roster-001/approve", nil)

	r := gin.New()
	r.POST("/approvals/roster/:id/approve", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.ApproveRoster(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15102 {
		t.Errorf("expected error code 15102, got %d", resp.Code)
	}
}

func TestApprovalHandler_ApproveClock_NotPending(t *testing.T) {
	mock := &mockApprovalService{clockErr: service.ErrNotPendingStatus}
	h := NewApprovalHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/approvals/clock/clock-001/approve", nil)

	r := gin.New()
	r.POST("/approvals/clock/:id/approve", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.ApproveClock(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_Me_Success(t *testing.T) {
	mock := &mockUserService{
		getResult: &dto.UserResponse{ID: "test-user-id", Name: "Sarah Davis", Role: "staff"},
	}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/me", nil)

	r := gin.New()
	r.GET("/users/me", func(c *gin.Context) {
		setIdentity(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/me", nil)

	r := gin.New()
	r.GET("/users/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestUserHandler_GetTeamMembers_NotFound(t *testing.T) {
	mock := &mockUserService{membersErr: service.ErrTeamNotFound}
	h := NewUserHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teams/missing/members", nil)

	r := gin.New()
	r.GET("/teams/:id/members", func(c *gin.Context) {
		setIdentity(c)
		h.GetTeamMembers(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_RosterXLSX_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		xlsxName: "roster_Development Team_20250310.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster.xlsx?team_id=t1&week_start=2025-03-10", nil)

	r := gin.New()
	r.GET("/export/roster.xlsx", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.RosterXLSX(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("expected xlsx content type, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_RosterXLSX_BadWeekStart(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster.xlsx?team_id=t1&week_start=not-a-date", nil)

	r := gin.New()
	r.GET("/export/roster.xlsx", func(c *gin.Context) {
		setReviewerIdentity(c)
		h.RosterXLSX(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_RosterICS_DefaultsToCaller(t *testing.T) {
	mock := &mockExportService{
		ics:     "BEGIN:VCALENDAR\nEND:VCALENDAR",
		icsName: "roster_Sarah Davis.ics",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster.ics", nil)

	r := gin.New()
	r.GET("/export/roster.ics", func(c *gin.Context) {
		setIdentity(c)
		h.RosterICS(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("expected iCalendar body")
	}
}
