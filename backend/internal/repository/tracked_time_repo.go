package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"worktrack/backend/internal/model"
	pkgerrors "worktrack/backend/pkg/errors"
)

// TrackedTimeRepository 工时区间数据访问接口
type TrackedTimeRepository interface {
	Create(ctx context.Context, t *model.TrackedTimeInterval) error
	GetByID(ctx context.Context, id string) (*model.TrackedTimeInterval, error)
	// GetOpenByWorker 取员工当前进行中的计时；不存在时返回 gorm.ErrRecordNotFound
	GetOpenByWorker(ctx context.Context, workerID string) (*model.TrackedTimeInterval, error)
	// FindIntersecting 查询与候选半开区间相交的工时区间
	// end 为 nil 表示候选区间开放；excludeID 非空时排除正在编辑的那条
	FindIntersecting(ctx context.Context, workerID string, start time.Time, end *time.Time, excludeID string) ([]model.TrackedTimeInterval, error)
	// FindByWorkerInRange 查询员工与 [start, end) 相交的全部工时区间（考勤修正时复核覆盖用）
	FindByWorkerInRange(ctx context.Context, workerID string, start time.Time, end *time.Time) ([]model.TrackedTimeInterval, error)
	// SumClosedHours 汇总工单下所有已收尾区间的有效工时
	SumClosedHours(ctx context.Context, workOrderID string) (decimal.Decimal, error)
	Update(ctx context.Context, t *model.TrackedTimeInterval) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type trackedTimeRepo struct {
	db *gorm.DB
}

// NewTrackedTimeRepo 创建 TrackedTimeRepository 实例
func NewTrackedTimeRepo(db *gorm.DB) TrackedTimeRepository {
	return &trackedTimeRepo{db: db}
}

func (r *trackedTimeRepo) Create(ctx context.Context, t *model.TrackedTimeInterval) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trackedTimeRepo) GetByID(ctx context.Context, id string) (*model.TrackedTimeInterval, error) {
	var t model.TrackedTimeInterval
	err := r.db.WithContext(ctx).
		Where("tracked_time_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trackedTimeRepo) GetOpenByWorker(ctx context.Context, workerID string) (*model.TrackedTimeInterval, error) {
	var t model.TrackedTimeInterval
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND end_at IS NULL", workerID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trackedTimeRepo) FindIntersecting(ctx context.Context, workerID string, start time.Time, end *time.Time, excludeID string) ([]model.TrackedTimeInterval, error) {
	var list []model.TrackedTimeInterval
	db := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Where("end_at IS NULL OR end_at > ?", start)
	if end != nil {
		db = db.Where("start_at < ?", *end)
	}
	if excludeID != "" {
		db = db.Where("tracked_time_id <> ?", excludeID)
	}
	err := db.Order("start_at ASC").Find(&list).Error
	return list, err
}

func (r *trackedTimeRepo) FindByWorkerInRange(ctx context.Context, workerID string, start time.Time, end *time.Time) ([]model.TrackedTimeInterval, error) {
	return r.FindIntersecting(ctx, workerID, start, end, "")
}

func (r *trackedTimeRepo) SumClosedHours(ctx context.Context, workOrderID string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&model.TrackedTimeInterval{}).
		Select("SUM(effective_hours)").
		Where("work_order_id = ? AND end_at IS NOT NULL", workOrderID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *trackedTimeRepo) Update(ctx context.Context, t *model.TrackedTimeInterval) error {
	oldVersion := t.Version
	result := r.db.WithContext(ctx).
		Model(t).
		Where("tracked_time_id = ? AND version = ?", t.TrackedTimeID, oldVersion).
		Updates(map[string]interface{}{
			"start_at":        t.StartAt,
			"end_at":          t.EndAt,
			"effective_hours": t.EffectiveHours,
			"updated_by":      t.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	t.Version = oldVersion + 1
	return nil
}

func (r *trackedTimeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.TrackedTimeInterval{}).
		Where("tracked_time_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
