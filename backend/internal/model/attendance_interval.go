package model

import (
	"time"

	"github.com/shopspring/decimal"

	"worktrack/backend/internal/interval"
)

// AttendanceInterval 考勤区间表 — 对应 attendance_intervals
// 员工的在岗时段 [StartAt, EndAt)；EndAt 为空表示仍在岗。
// 不变式：同一员工最多一条 EndAt 为空的记录（由部分唯一索引兜底）
type AttendanceInterval struct {
	AttendanceID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	WorkerID       string           `gorm:"type:uuid;not null;index:idx_attendance_worker_start" json:"worker_id"`
	StartAt        time.Time        `gorm:"not null;index:idx_attendance_worker_start"     json:"start_at"`
	EndAt          *time.Time       `json:"end_at,omitempty"`
	EffectiveHours *decimal.Decimal `gorm:"type:decimal(10,2)" json:"effective_hours,omitempty"` // 收班后才有值
	VersionedModel
}

// TableName 指定表名
func (AttendanceInterval) TableName() string { return "attendance_intervals" }

// Span 转换为半开区间
func (a *AttendanceInterval) Span() interval.Span {
	return interval.Span{Start: a.StartAt, End: a.EndAt}
}

// IsOpen 是否仍在岗
func (a *AttendanceInterval) IsOpen() bool { return a.EndAt == nil }
