package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"worktrack/backend/internal/model"
	pkgerrors "worktrack/backend/pkg/errors"
)

// AttendanceRepository 考勤区间数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, a *model.AttendanceInterval) error
	GetByID(ctx context.Context, id string) (*model.AttendanceInterval, error)
	// GetOpenByWorker 取员工当前在岗记录；不存在时返回 gorm.ErrRecordNotFound
	GetOpenByWorker(ctx context.Context, workerID string) (*model.AttendanceInterval, error)
	// FindIntersecting 查询与候选半开区间相交的考勤区间
	// end 为 nil 表示候选区间开放（延伸到正无穷）
	FindIntersecting(ctx context.Context, workerID string, start time.Time, end *time.Time) ([]model.AttendanceInterval, error)
	Update(ctx context.Context, a *model.AttendanceInterval) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.AttendanceInterval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.AttendanceInterval, error) {
	var a model.AttendanceInterval
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) GetOpenByWorker(ctx context.Context, workerID string) (*model.AttendanceInterval, error) {
	var a model.AttendanceInterval
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND end_at IS NULL", workerID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) FindIntersecting(ctx context.Context, workerID string, start time.Time, end *time.Time) ([]model.AttendanceInterval, error) {
	var list []model.AttendanceInterval
	db := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Where("end_at IS NULL OR end_at > ?", start)
	if end != nil {
		db = db.Where("start_at < ?", *end)
	}
	err := db.Order("start_at ASC").Find(&list).Error
	return list, err
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.AttendanceInterval) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(a).
		Where("attendance_id = ? AND version = ?", a.AttendanceID, oldVersion).
		Updates(map[string]interface{}{
			"start_at":        a.StartAt,
			"end_at":          a.EndAt,
			"effective_hours": a.EffectiveHours,
			"updated_by":      a.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version = oldVersion + 1
	return nil
}
