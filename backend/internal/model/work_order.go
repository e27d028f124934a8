package model

import "github.com/shopspring/decimal"

// WorkOrder 工单表 — 对应 work_orders
// 工时区间的父订单；行项目重算完成后刷新 TotalAmount
type WorkOrder struct {
	WorkOrderID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"work_order_id"`
	OrderNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"          json:"order_number"`
	Status      string          `gorm:"type:varchar(20);not null;default:'open'"       json:"status"` // open | closed
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"          json:"total_amount"`
	BaseModel
}

// TableName 指定表名
func (WorkOrder) TableName() string { return "work_orders" }
