package dto

import "time"

// ── 排班模块 DTO ──

// CreateRosterEntryRequest 创建排班条目请求
type CreateRosterEntryRequest struct {
	Title    string    `json:"title"    binding:"required,min=1,max=200"`
	Start    time.Time `json:"start"    binding:"required"`
	End      time.Time `json:"end"      binding:"required"`
	Location string    `json:"location" binding:"required,oneof=office site_a site_b remote"`
	Tasks    string    `json:"tasks"    binding:"required,max=1000"`
}

// UpdateRosterEntryRequest 更新排班条目请求
// 全部为指针字段：缺省表示不修改；Service 层合并后整体校验再提交
type UpdateRosterEntryRequest struct {
	Title    *string    `json:"title"    binding:"omitempty,min=1,max=200"`
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	Location *string    `json:"location" binding:"omitempty,oneof=office site_a site_b remote"`
	Tasks    *string    `json:"tasks"    binding:"omitempty,max=1000"`
}

// RosterListRequest 排班列表查询参数
type RosterListRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to"   time_format:"2006-01-02"`
}

// DayGridRequest 日视图查询参数
// user_id 与 team_id 二选一；都缺省时返回调用者本人的日视图
type DayGridRequest struct {
	Date   string `form:"date"    binding:"required,datetime=2006-01-02"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
}

// RosterEntryResponse 排班条目响应
type RosterEntryResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	User         *UserBrief `json:"user,omitempty"`
	Title        string     `json:"title"`
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	Location     string     `json:"location"`
	Tasks        string     `json:"tasks"`
	Status       string     `json:"status"`
	RejectReason string     `json:"reject_reason,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}

// PositionedEntryResponse 带日视图定位的排班条目
type PositionedEntryResponse struct {
	RosterEntryResponse
	StartPercent float64 `json:"start_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// DayGridResponse 日视图响应
type DayGridResponse struct {
	Date         string                    `json:"date"`
	DayStartHour int                       `json:"day_start_hour"`
	DayEndHour   int                       `json:"day_end_hour"`
	Entries      []PositionedEntryResponse `json:"entries"`
}

// [自证通过] internal/dto/roster.go
