package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"worktrack/backend/internal/model"
)

// LineItemRepository 派生行项目数据访问接口
type LineItemRepository interface {
	// Upsert 按 (work_order_id, kind) 插入或更新行项目
	Upsert(ctx context.Context, item *model.DerivedLineItem) error
	ListByOrder(ctx context.Context, workOrderID string) ([]model.DerivedLineItem, error)
}

type lineItemRepo struct {
	db *gorm.DB
}

// NewLineItemRepo 创建 LineItemRepository 实例
func NewLineItemRepo(db *gorm.DB) LineItemRepository {
	return &lineItemRepo{db: db}
}

func (r *lineItemRepo) Upsert(ctx context.Context, item *model.DerivedLineItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "work_order_id"}, {Name: "kind"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity_hours": item.QuantityHours,
				"unit_rate":      item.UnitRate,
				"amount":         item.Amount,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).
		Create(item).Error
}

func (r *lineItemRepo) ListByOrder(ctx context.Context, workOrderID string) ([]model.DerivedLineItem, error) {
	var items []model.DerivedLineItem
	err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("kind ASC").
		Find(&items).Error
	return items, err
}
