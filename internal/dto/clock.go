package dto

import "time"

// ── 打卡模块 DTO ──

// BackdateClockRequest 补登打卡请求
// kind=in 补登一段（至少是上班时间，可附下班时间）；kind=out 为当前进行中的会话补下班时间
type BackdateClockRequest struct {
	Kind      string     `json:"kind"       binding:"required,oneof=in out"`
	Timestamp time.Time  `json:"timestamp"  binding:"required"`
	ClockOut  *time.Time `json:"clock_out"`
	Notes     string     `json:"notes"      binding:"required,max=500"`
	RosterID  *string    `json:"roster_id"  binding:"omitempty,uuid"`
}

// ClockRecordListRequest 打卡记录查询参数
type ClockRecordListRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to"   time_format:"2006-01-02"`
}

// ActiveClockRequest 团队在岗查询参数
type ActiveClockRequest struct {
	TeamID string `form:"team_id" binding:"required,uuid"`
}

// ClockStatusResponse 当前打卡状态响应
type ClockStatusResponse struct {
	ClockedIn bool       `json:"clocked_in"`
	Since     *time.Time `json:"since,omitempty"`
	RecordID  *string    `json:"record_id,omitempty"`
}

// ClockRecordResponse 打卡记录响应
type ClockRecordResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	User         *UserBrief `json:"user,omitempty"`
	ClockInTime  time.Time  `json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time,omitempty"`
	IsDateBack   bool       `json:"is_date_back"`
	Notes        string     `json:"notes,omitempty"`
	Status       string     `json:"status"`
	RosterID     *string    `json:"roster_id,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// ActiveClockResponse 团队在岗响应
type ActiveClockResponse struct {
	TeamID  string      `json:"team_id"`
	Active  []UserBrief `json:"active"`
	Checked int         `json:"checked"` // 参与检查的成员数
}
