package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"rosterboard/backend/internal/dto"
	"rosterboard/backend/internal/service"
	"rosterboard/backend/pkg/response"
)

// RosterHandler 排班模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// Create 创建排班条目
// POST /api/v1/roster
func (h *RosterHandler) Create(c *gin.Context) {
	var req dto.CreateRosterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entry, err := h.rosterSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.Created(c, entry)
}

// GetByID 获取排班条目详情
// GET /api/v1/roster/:id
func (h *RosterHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班条目ID不能为空")
		return
	}

	entry, err := h.rosterSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, entry)
}

// ListMine 获取我的排班
// GET /api/v1/roster/my
func (h *RosterHandler) ListMine(c *gin.Context) {
	var req dto.RosterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entries, err := h.rosterSvc.ListMine(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// ListByTeam 获取团队排班
// GET /api/v1/teams/:id/roster
func (h *RosterHandler) ListByTeam(c *gin.Context) {
	teamID := c.Param("id")
	if teamID == "" {
		response.BadRequest(c, 10001, "团队ID不能为空")
		return
	}

	var req dto.RosterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entries, err := h.rosterSvc.ListByTeam(c.Request.Context(), teamID, &req)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// Update 编辑排班条目（任何编辑都会把状态重置为待审批）
// PUT /api/v1/roster/:id
func (h *RosterHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班条目ID不能为空")
		return
	}

	var req dto.UpdateRosterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entry, err := h.rosterSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, entry)
}

// Delete 删除排班条目
// DELETE /api/v1/roster/:id
func (h *RosterHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班条目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.rosterSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, nil)
}

// Submit 重新提交审批
// POST /api/v1/roster/:id/submit
func (h *RosterHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班条目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entry, err := h.rosterSvc.SubmitForApproval(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, entry)
}

// DayGrid 日视图（带水平百分比定位）
// GET /api/v1/roster/day-grid?date=2025-03-10&user_id=xxx|team_id=xxx
func (h *RosterHandler) DayGrid(c *gin.Context) {
	var req dto.DayGridRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grid, err := h.rosterSvc.DayGrid(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, grid)
}

// handleRosterError 统一处理排班模块业务错误
func (h *RosterHandler) handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRosterEntryNotFound):
		response.NotFound(c, 13101, "排班条目不存在")
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 12102, "团队不存在")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 13102, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrTitleRequired):
		response.BadRequest(c, 13103, "标题不能为空")
	case errors.Is(err, service.ErrTasksRequired):
		response.BadRequest(c, 13104, "工作内容不能为空")
	case errors.Is(err, service.ErrInvalidLocation):
		response.BadRequest(c, 13105, "工作地点取值无效")
	case errors.Is(err, service.ErrNotEntryOwner):
		response.Forbidden(c, 13106, "只能操作自己的排班条目")
	case errors.Is(err, service.ErrEntryApproved):
		response.Conflict(c, 13107, "已批准的排班条目不能删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/roster_handler.go
