package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"worktrack/backend/internal/model"
	"worktrack/backend/internal/repository"
)

// LineItemService 派生行项目重算接口
//
// 重算是幂等的：永远从当前的已收尾工时全量汇总，从不增量累加，
// 两个触发方并发重算同一工单时收敛到同一结果
type LineItemService interface {
	// Recalculate 重算工单的人工/管理费/耗材行项目并刷新工单总额
	Recalculate(ctx context.Context, workOrderID string) ([]model.DerivedLineItem, error)
}

type lineItemService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLineItemService 创建 LineItemService 实例
func NewLineItemService(repo *repository.Repository, logger *zap.Logger) LineItemService {
	return &lineItemService{repo: repo, logger: logger}
}

var oneHundred = decimal.NewFromInt(100)

func (s *lineItemService) Recalculate(ctx context.Context, workOrderID string) ([]model.DerivedLineItem, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	// 1. 全量汇总已收尾区间的有效工时
	totalHours, err := s.repo.TrackedTime.SumClosedHours(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	// 2. 人工与管理费
	labourAmount := totalHours.Mul(settings.LabourRate).Round(2)
	overheadAmount := totalHours.Mul(settings.OverheadRate).Round(2)

	if err := s.repo.LineItem.Upsert(ctx, &model.DerivedLineItem{
		WorkOrderID:   workOrderID,
		Kind:          model.LineItemKindLabour,
		QuantityHours: totalHours,
		UnitRate:      settings.LabourRate,
		Amount:        labourAmount,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.LineItem.Upsert(ctx, &model.DerivedLineItem{
		WorkOrderID:   workOrderID,
		Kind:          model.LineItemKindOverhead,
		QuantityHours: totalHours,
		UnitRate:      settings.OverheadRate,
		Amount:        overheadAmount,
	}); err != nil {
		return nil, err
	}

	// 3. 耗材：按人工金额的百分比；费率归零时清零而不删除，保持历史可对账
	supply := &model.DerivedLineItem{
		WorkOrderID: workOrderID,
		Kind:        model.LineItemKindSupply,
	}
	if settings.SupplyRatePct.IsPositive() {
		supply.QuantityHours = totalHours
		supply.UnitRate = settings.SupplyRatePct
		supply.Amount = labourAmount.Mul(settings.SupplyRatePct).Div(oneHundred).Round(2)
	} else {
		supply.QuantityHours = decimal.Zero
		supply.UnitRate = decimal.Zero
		supply.Amount = decimal.Zero
	}
	if err := s.repo.LineItem.Upsert(ctx, supply); err != nil {
		return nil, err
	}

	// 4. 刷新工单总额
	if err := s.repo.WorkOrder.RecalculateTotal(ctx, workOrderID); err != nil {
		return nil, err
	}

	s.logger.Debug("行项目重算完成",
		zap.String("work_order_id", workOrderID),
		zap.String("total_hours", totalHours.String()),
	)

	return s.repo.LineItem.ListByOrder(ctx, workOrderID)
}
