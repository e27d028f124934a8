package model

import (
	"time"

	"github.com/shopspring/decimal"

	"worktrack/backend/internal/interval"
)

// TrackedTimeInterval 工时区间表 — 对应 tracked_time_intervals
// 计入某工单的工作时段 [StartAt, EndAt)；EndAt 为空表示计时进行中。
// 不变式：同一员工的工时区间两两不相交，且完整落在考勤区间并集内
type TrackedTimeInterval struct {
	TrackedTimeID  string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tracked_time_id"`
	WorkerID       string           `gorm:"type:uuid;not null;index:idx_tracked_worker_start" json:"worker_id"`
	WorkOrderID    string           `gorm:"type:uuid;not null;index"                       json:"work_order_id"`
	StartAt        time.Time        `gorm:"not null;index:idx_tracked_worker_start"        json:"start_at"`
	EndAt          *time.Time       `json:"end_at,omitempty"`
	EffectiveHours *decimal.Decimal `gorm:"type:decimal(10,2)"                    json:"effective_hours,omitempty"`
	HourlyRate     decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"hourly_rate"` // 创建时抓取的费率快照
	VersionedModel

	// 关联
	WorkOrder *WorkOrder `gorm:"foreignKey:WorkOrderID;references:WorkOrderID" json:"work_order,omitempty"`
}

// TableName 指定表名
func (TrackedTimeInterval) TableName() string { return "tracked_time_intervals" }

// Span 转换为半开区间
func (t *TrackedTimeInterval) Span() interval.Span {
	return interval.Span{Start: t.StartAt, End: t.EndAt}
}

// IsClosed 是否已收尾（两端都已知）
func (t *TrackedTimeInterval) IsClosed() bool { return t.EndAt != nil }
