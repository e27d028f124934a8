package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 行项目类型
const (
	LineItemKindLabour   = "labour"
	LineItemKindOverhead = "overhead"
	LineItemKindSupply   = "supply"
)

// DerivedLineItem 派生行项目表 — 对应 derived_line_items
// 由重算器独占维护的金额行：每个工单每种类型至多一条（upsert）。
// supply 在费率归零时清零而不删除，保持历史可对账
type DerivedLineItem struct {
	LineItemID    string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"line_item_id"`
	WorkOrderID   string          `gorm:"type:uuid;not null;uniqueIndex:uniq_line_item_per_kind" json:"work_order_id"`
	Kind          string          `gorm:"type:varchar(20);not null;uniqueIndex:uniq_line_item_per_kind" json:"kind"`
	QuantityHours decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity_hours"`
	UnitRate      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_rate"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"updated_at"`
}

// TableName 指定表名
func (DerivedLineItem) TableName() string { return "derived_line_items" }
