package repository

import (
	"context"

	"gorm.io/gorm"

	"worktrack/backend/internal/model"
)

// WorkOrderRepository 工单数据访问接口
// 工单本身的增删改由主套件负责，引擎只读工单并刷新总额
type WorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (*model.WorkOrder, error)
	// RecalculateTotal 把工单总额刷新为其行项目金额之和
	RecalculateTotal(ctx context.Context, workOrderID string) error
}

type workOrderRepo struct {
	db *gorm.DB
}

// NewWorkOrderRepo 创建 WorkOrderRepository 实例
func NewWorkOrderRepo(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepo{db: db}
}

func (r *workOrderRepo) GetByID(ctx context.Context, id string) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.WithContext(ctx).
		Where("work_order_id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepo) RecalculateTotal(ctx context.Context, workOrderID string) error {
	return r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Where("work_order_id = ?", workOrderID).
		Updates(map[string]interface{}{
			"total_amount": gorm.Expr(
				"(SELECT COALESCE(SUM(amount), 0) FROM derived_line_items WHERE work_order_id = ?)",
				workOrderID,
			),
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
