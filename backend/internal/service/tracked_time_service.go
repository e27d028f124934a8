package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/interval"
	"worktrack/backend/internal/model"
	"worktrack/backend/internal/repository"
	"worktrack/backend/pkg/keymutex"
)

// TrackedTimeService 工时区间业务接口
//
// 所有写路径都持员工级锁做"校验 + 写入"：候选区间必须与既有工时
// 两两不相交，且完整落在考勤区间并集内。收尾后的变更触发行项目
// 重算；重算失败不回滚工时，以 warnings 形式返回
type TrackedTimeService interface {
	// ClockIn 开始计时：为员工开启一条进行中的工时区间
	ClockIn(ctx context.Context, req *dto.ClockInRequest, callerID string) (*dto.TrackedTimeMutationResponse, error)
	// ClockOut 结束计时：收尾进行中的工时区间并计算有效工时
	ClockOut(ctx context.Context, req *dto.ClockOutRequest, callerID string) (*dto.TrackedTimeMutationResponse, error)
	// Create 手工补录一条两端已知的工时区间
	Create(ctx context.Context, req *dto.CreateTrackedTimeRequest, callerID string) (*dto.TrackedTimeMutationResponse, error)
	// Update 修正工时区间的端点
	Update(ctx context.Context, id string, req *dto.UpdateTrackedTimeRequest, callerID string) (*dto.TrackedTimeMutationResponse, error)
	// Delete 软删除工时区间并重算所属工单
	Delete(ctx context.Context, id string, callerID string) (*dto.TrackedTimeMutationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TrackedTimeResponse, error)
}

type trackedTimeService struct {
	repo     *repository.Repository
	lineItem LineItemService
	locks    *keymutex.KeyMutex
	zones    *zoneResolver
	logger   *zap.Logger
}

// NewTrackedTimeService 创建 TrackedTimeService 实例
func NewTrackedTimeService(repo *repository.Repository, lineItem LineItemService, locks *keymutex.KeyMutex, zones *zoneResolver, logger *zap.Logger) TrackedTimeService {
	return &trackedTimeService{repo: repo, lineItem: lineItem, locks: locks, zones: zones, logger: logger}
}

// ────────────────────── ClockIn ──────────────────────

func (s *trackedTimeService) ClockIn(ctx context.Context, req *dto.ClockInRequest, callerID string) (*dto.TrackedTimeMutationResponse, error) {
	if _, err := s.repo.WorkOrder.GetByID(ctx, req.WorkOrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		s.logger.Error("查询工单失败", zap.Error(err))
		return nil, err
	}

	s.locks.Lock(req.WorkerID)
	defer s.locks.Unlock(req.WorkerID)

	// 同一员工同时只能有一条进行中的计时
	if _, err := s.repo.TrackedTime.GetOpenByWorker(ctx, req.WorkerID); err == nil {
		return nil, ErrEntryAlreadyOpen
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询进行中计时失败", zap.Error(err))
		return nil, err
	}

	startAt := req.StartAt.UTC()

	// 开放候选 [startAt, +∞) 的重叠与覆盖校验
	if err := s.guardOverlap(ctx, req.WorkerID, startAt, nil, ""); err != nil {
		return nil, err
	}
	if err := s.guardOpenCovered(ctx, req.WorkerID, startAt); err != nil {
		return nil, err
	}

	t := &model.TrackedTimeInterval{
		WorkerID:    req.WorkerID,
		WorkOrderID: req.WorkOrderID,
		StartAt:     startAt,
		HourlyRate:  s.snapshotRate(ctx),
	}
	t.CreatedBy = &callerID
	t.UpdatedBy = &callerID

	if err := s.repo.TrackedTime.Create(ctx, t); err != nil {
		s.logger.Error("创建工时区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("开始计时",
		zap.String("worker_id", req.WorkerID),
		zap.String("work_order_id", req.WorkOrderID),
		zap.String("tracked_time_id", t.TrackedTimeID),
	)
	// 进行中的区间不计入汇总，无需重算
	return &dto.TrackedTimeMutationResponse{Entry: toTrackedTimeResponse(t)}, nil
}

// ────────────────────── ClockOut ──────────────────────

func (s *trackedTimeService) ClockOut(ctx context.Context, req *dto.ClockOutRequest, callerID string) (*dto.TrackedTimeMutationResponse, error) {
	s.locks.Lock(req.WorkerID)
	defer s.locks.Unlock(req.WorkerID)

	t, err := s.repo.TrackedTime.GetOpenByWorker(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenEntry
		}
		s.logger.Error("查询进行中计时失败", zap.Error(err))
		return nil, err
	}

	endAt := req.EndAt.UTC()
	if !endAt.After(t.StartAt) {
		return nil, ErrInvalidInterval
	}

	if err := s.guardOverlap(ctx, t.WorkerID, t.StartAt, &endAt, t.TrackedTimeID); err != nil {
		return nil, err
	}
	if err := s.guardClosedCovered(ctx, t.WorkerID, t.StartAt, endAt); err != nil {
		return nil, err
	}

	hours := interval.EffectiveHours(t.StartAt, endAt, s.loadBreakWindow(ctx, req.Timezone))

	t.EndAt = &endAt
	t.EffectiveHours = &hours
	t.UpdatedBy = &callerID

	if err := s.repo.TrackedTime.Update(ctx, t); err != nil {
		s.logger.Error("收尾工时区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("结束计时",
		zap.String("worker_id", t.WorkerID),
		zap.String("tracked_time_id", t.TrackedTimeID),
		zap.String("effective_hours", hours.String()),
	)

	items, warnings := s.recalc(ctx, t.WorkOrderID)
	return &dto.TrackedTimeMutationResponse{
		Entry:     toTrackedTimeResponse(t),
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

// ────────────────────── Create ──────────────────────

func (s *trackedTimeService) Create(ctx context.Context, req *dto.CreateTrackedTimeRequest, callerID string) (*dto.TrackedTimeMutationResponse, error) {
	if _, err := s.repo.WorkOrder.GetByID(ctx, req.WorkOrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		s.logger.Error("查询工单失败", zap.Error(err))
		return nil, err
	}

	startAt := req.StartAt.UTC()
	endAt := req.EndAt.UTC()
	if !endAt.After(startAt) {
		return nil, ErrInvalidInterval
	}

	s.locks.Lock(req.WorkerID)
	defer s.locks.Unlock(req.WorkerID)

	if err := s.guardOverlap(ctx, req.WorkerID, startAt, &endAt, ""); err != nil {
		return nil, err
	}
	if err := s.guardClosedCovered(ctx, req.WorkerID, startAt, endAt); err != nil {
		return nil, err
	}

	hours := interval.EffectiveHours(startAt, endAt, s.loadBreakWindow(ctx, req.Timezone))

	t := &model.TrackedTimeInterval{
		WorkerID:       req.WorkerID,
		WorkOrderID:    req.WorkOrderID,
		StartAt:        startAt,
		EndAt:          &endAt,
		EffectiveHours: &hours,
		HourlyRate:     s.snapshotRate(ctx),
	}
	t.CreatedBy = &callerID
	t.UpdatedBy = &callerID

	if err := s.repo.TrackedTime.Create(ctx, t); err != nil {
		s.logger.Error("补录工时区间失败", zap.Error(err))
		return nil, err
	}

	items, warnings := s.recalc(ctx, t.WorkOrderID)
	return &dto.TrackedTimeMutationResponse{
		Entry:     toTrackedTimeResponse(t),
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *trackedTimeService) Update(ctx context.Context, id string, req *dto.UpdateTrackedTimeRequest, callerID string) (*dto.TrackedTimeMutationResponse, error) {
	t, err := s.repo.TrackedTime.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackedTimeNotFound
		}
		s.logger.Error("查询工时区间失败", zap.Error(err))
		return nil, err
	}

	s.locks.Lock(t.WorkerID)
	defer s.locks.Unlock(t.WorkerID)

	if req.StartAt != nil {
		t.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		endAt := req.EndAt.UTC()
		t.EndAt = &endAt
	}
	if t.EndAt != nil && !t.EndAt.After(t.StartAt) {
		return nil, ErrInvalidInterval
	}

	if err := s.guardOverlap(ctx, t.WorkerID, t.StartAt, t.EndAt, t.TrackedTimeID); err != nil {
		return nil, err
	}
	if t.EndAt != nil {
		if err := s.guardClosedCovered(ctx, t.WorkerID, t.StartAt, *t.EndAt); err != nil {
			return nil, err
		}
		hours := interval.EffectiveHours(t.StartAt, *t.EndAt, s.loadBreakWindow(ctx, req.Timezone))
		t.EffectiveHours = &hours
	} else {
		if err := s.guardOpenCovered(ctx, t.WorkerID, t.StartAt); err != nil {
			return nil, err
		}
	}
	t.UpdatedBy = &callerID

	if err := s.repo.TrackedTime.Update(ctx, t); err != nil {
		s.logger.Error("修正工时区间失败", zap.Error(err))
		return nil, err
	}

	items, warnings := s.recalc(ctx, t.WorkOrderID)
	return &dto.TrackedTimeMutationResponse{
		Entry:     toTrackedTimeResponse(t),
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *trackedTimeService) Delete(ctx context.Context, id string, callerID string) (*dto.TrackedTimeMutationResponse, error) {
	t, err := s.repo.TrackedTime.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackedTimeNotFound
		}
		s.logger.Error("查询工时区间失败", zap.Error(err))
		return nil, err
	}

	s.locks.Lock(t.WorkerID)
	defer s.locks.Unlock(t.WorkerID)

	if err := s.repo.TrackedTime.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除工时区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("工时区间已删除",
		zap.String("tracked_time_id", id),
		zap.String("deleted_by", callerID),
	)

	items, warnings := s.recalc(ctx, t.WorkOrderID)
	return &dto.TrackedTimeMutationResponse{
		LineItems: items,
		Warnings:  warnings,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *trackedTimeService) GetByID(ctx context.Context, id string) (*dto.TrackedTimeResponse, error) {
	t, err := s.repo.TrackedTime.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackedTimeNotFound
		}
		return nil, err
	}
	return toTrackedTimeResponse(t), nil
}

// ── 内部辅助方法 ──

// guardOverlap 候选区间不得与同员工任何既有工时相交（首尾相接允许）
func (s *trackedTimeService) guardOverlap(ctx context.Context, workerID string, start time.Time, end *time.Time, excludeID string) error {
	conflicts, err := s.repo.TrackedTime.FindIntersecting(ctx, workerID, start, end, excludeID)
	if err != nil {
		s.logger.Error("重叠校验查询失败", zap.Error(err))
		return err
	}
	if len(conflicts) > 0 {
		return &OverlapError{Conflicts: conflicts}
	}
	return nil
}

// guardClosedCovered 收尾候选 [start, end) 必须被考勤区间并集无缝覆盖
func (s *trackedTimeService) guardClosedCovered(ctx context.Context, workerID string, start, end time.Time) error {
	attendances, err := s.repo.Attendance.FindIntersecting(ctx, workerID, start, &end)
	if err != nil {
		s.logger.Error("覆盖校验查询失败", zap.Error(err))
		return err
	}
	spans := make([]interval.Span, 0, len(attendances))
	for i := range attendances {
		spans = append(spans, attendances[i].Span())
	}
	if !interval.Covers(start, end, spans) {
		return &NotCoveredError{Nearest: nearestAttendance(attendances)}
	}
	return nil
}

// guardOpenCovered 开放候选要求存在一条起点不晚于 start 的在岗考勤区间
func (s *trackedTimeService) guardOpenCovered(ctx context.Context, workerID string, start time.Time) error {
	open, err := s.repo.Attendance.GetOpenByWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotCoveredError{}
		}
		s.logger.Error("覆盖校验查询失败", zap.Error(err))
		return err
	}
	if open.StartAt.After(start) {
		return &NotCoveredError{Nearest: open}
	}
	return nil
}

// snapshotRate 抓取创建时刻的人工费率快照
// 配置读不到时快照为 0，计费金额以重算时的最新费率为准
func (s *trackedTimeService) snapshotRate(ctx context.Context) decimal.Decimal {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		s.logger.Warn("读取引擎配置失败，费率快照记 0", zap.Error(err))
		return decimal.Zero
	}
	return settings.LabourRate
}

func (s *trackedTimeService) loadBreakWindow(ctx context.Context, tzHint string) *interval.BreakWindow {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		s.logger.Warn("读取引擎配置失败，跳过休息扣除", zap.Error(err))
		return nil
	}
	return s.zones.breakWindow(settings, tzHint)
}

// recalc 尽力而为地重算行项目；失败以 warning 返回，不影响已保存的工时
func (s *trackedTimeService) recalc(ctx context.Context, workOrderID string) ([]dto.LineItemResponse, []string) {
	items, err := s.lineItem.Recalculate(ctx, workOrderID)
	if err != nil {
		s.logger.Warn("行项目重算失败，工时已保存",
			zap.String("work_order_id", workOrderID),
			zap.Error(err),
		)
		return nil, []string{"行项目重算失败，工时已保存: " + err.Error()}
	}
	return toLineItemResponses(items), nil
}

func nearestAttendance(list []model.AttendanceInterval) *model.AttendanceInterval {
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}
