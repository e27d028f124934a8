package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EngineSettings 引擎配置单例表 — 对应 engine_settings
// 休息时段是挂钟时间对，不绑定日期，针对区间跨越的每个日历日重新解释。
// 每次请求开始时从库里读最新值，引擎侧只读
type EngineSettings struct {
	Singleton     bool            `gorm:"primaryKey;default:true"               json:"-"`
	BreakStart    string          `gorm:"type:varchar(5);not null;default:''"   json:"break_start"` // "HH:MM"，空串表示未配置
	BreakEnd      string          `gorm:"type:varchar(5);not null;default:''"   json:"break_end"`
	Timezone      string          `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	LabourRate    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"labour_rate"`
	OverheadRate  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"overhead_rate"`
	SupplyRatePct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"  json:"supply_rate_pct"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"updated_at"`
	UpdatedBy     *string         `gorm:"type:uuid"                             json:"updated_by,omitempty"`
}

// TableName 指定表名
func (EngineSettings) TableName() string { return "engine_settings" }

// HasBreakWindow 是否配置了休息时段
func (s *EngineSettings) HasBreakWindow() bool {
	return s.BreakStart != "" && s.BreakEnd != ""
}
