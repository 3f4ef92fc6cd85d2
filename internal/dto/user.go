package dto

// ── 用户 / 团队模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role   string `form:"role"    binding:"omitempty,oneof=staff team_leader service_supervisor"`
	TeamID string `form:"team_id" binding:"omitempty,uuid"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	TeamID *string    `json:"team_id,omitempty"`
	Team   *TeamBrief `json:"team,omitempty"`
}

// TeamResponse 团队信息响应
type TeamResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	LeaderID *string    `json:"leader_id,omitempty"`
	Leader   *UserBrief `json:"leader,omitempty"`
}
