package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/interval"
	"worktrack/backend/internal/model"
	"worktrack/backend/internal/repository"
	"worktrack/backend/pkg/keymutex"
)

// AttendanceService 考勤区间业务接口
type AttendanceService interface {
	// OpenShift 上班打卡：为员工开启一条开放考勤区间
	OpenShift(ctx context.Context, req *dto.OpenShiftRequest, callerID string) (*dto.AttendanceResponse, error)
	// CloseShift 下班打卡：收尾员工当前的开放考勤区间并计算有效工时
	CloseShift(ctx context.Context, req *dto.CloseShiftRequest, callerID string) (*dto.AttendanceResponse, error)
	// Update 管理员修正考勤区间；修正后所有已登记工时必须仍被覆盖
	Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	locks  *keymutex.KeyMutex
	zones  *zoneResolver
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, locks *keymutex.KeyMutex, zones *zoneResolver, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, locks: locks, zones: zones, logger: logger}
}

// ────────────────────── OpenShift ──────────────────────

func (s *attendanceService) OpenShift(ctx context.Context, req *dto.OpenShiftRequest, callerID string) (*dto.AttendanceResponse, error) {
	s.locks.Lock(req.WorkerID)
	defer s.locks.Unlock(req.WorkerID)

	// 同一员工最多一条开放考勤区间
	_, err := s.repo.Attendance.GetOpenByWorker(ctx, req.WorkerID)
	if err == nil {
		return nil, ErrShiftAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询在岗记录失败", zap.Error(err))
		return nil, err
	}

	a := &model.AttendanceInterval{
		WorkerID: req.WorkerID,
		StartAt:  req.StartAt.UTC(),
	}
	a.CreatedBy = &callerID
	a.UpdatedBy = &callerID

	if err := s.repo.Attendance.Create(ctx, a); err != nil {
		s.logger.Error("创建考勤区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("上班打卡",
		zap.String("worker_id", req.WorkerID),
		zap.String("attendance_id", a.AttendanceID),
	)
	return toAttendanceResponse(a), nil
}

// ────────────────────── CloseShift ──────────────────────

func (s *attendanceService) CloseShift(ctx context.Context, req *dto.CloseShiftRequest, callerID string) (*dto.AttendanceResponse, error) {
	s.locks.Lock(req.WorkerID)
	defer s.locks.Unlock(req.WorkerID)

	a, err := s.repo.Attendance.GetOpenByWorker(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotOpen
		}
		s.logger.Error("查询在岗记录失败", zap.Error(err))
		return nil, err
	}

	endAt := req.EndAt.UTC()
	if !endAt.After(a.StartAt) {
		return nil, ErrInvalidInterval
	}

	hours := interval.EffectiveHours(a.StartAt, endAt, s.loadBreakWindow(ctx, req.Timezone))

	a.EndAt = &endAt
	a.EffectiveHours = &hours
	a.UpdatedBy = &callerID

	if err := s.repo.Attendance.Update(ctx, a); err != nil {
		s.logger.Error("收尾考勤区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("下班打卡",
		zap.String("worker_id", req.WorkerID),
		zap.String("attendance_id", a.AttendanceID),
		zap.String("effective_hours", hours.String()),
	)
	return toAttendanceResponse(a), nil
}

// ────────────────────── Update ──────────────────────

func (s *attendanceService) Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error) {
	a, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤区间失败", zap.Error(err))
		return nil, err
	}

	s.locks.Lock(a.WorkerID)
	defer s.locks.Unlock(a.WorkerID)

	oldSpan := a.Span()

	if req.StartAt != nil {
		a.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		endAt := req.EndAt.UTC()
		a.EndAt = &endAt
	}
	if a.EndAt != nil && !a.EndAt.After(a.StartAt) {
		return nil, ErrInvalidInterval
	}

	// 修正只能在不让既有工时失去覆盖的前提下进行
	if err := s.verifyDependentsCovered(ctx, a, oldSpan); err != nil {
		return nil, err
	}

	if a.EndAt != nil {
		hours := interval.EffectiveHours(a.StartAt, *a.EndAt, s.loadBreakWindow(ctx, req.Timezone))
		a.EffectiveHours = &hours
	}
	a.UpdatedBy = &callerID

	if err := s.repo.Attendance.Update(ctx, a); err != nil {
		s.logger.Error("修正考勤区间失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("考勤区间已修正",
		zap.String("attendance_id", a.AttendanceID),
		zap.String("updated_by", callerID),
	)
	return toAttendanceResponse(a), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *attendanceService) GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	a, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return toAttendanceResponse(a), nil
}

// ── 内部辅助方法 ──

// loadBreakWindow 读取引擎配置并构造休息时段
// 休息扣除是尽力而为，配置读不到时按未配置处理，不阻断打卡
func (s *attendanceService) loadBreakWindow(ctx context.Context, tzHint string) *interval.BreakWindow {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		s.logger.Warn("读取引擎配置失败，跳过休息扣除", zap.Error(err))
		return nil
	}
	return s.zones.breakWindow(settings, tzHint)
}

// verifyDependentsCovered 校验落在原区间内的工时在修正后仍被考勤并集覆盖
func (s *attendanceService) verifyDependentsCovered(ctx context.Context, edited *model.AttendanceInterval, oldSpan interval.Span) error {
	tracked, err := s.repo.TrackedTime.FindByWorkerInRange(ctx, edited.WorkerID, oldSpan.Start, oldSpan.End)
	if err != nil {
		s.logger.Error("查询关联工时失败", zap.Error(err))
		return err
	}

	for i := range tracked {
		t := &tracked[i]
		spans, err := s.repo.Attendance.FindIntersecting(ctx, t.WorkerID, t.StartAt, t.EndAt)
		if err != nil {
			s.logger.Error("查询考勤区间失败", zap.Error(err))
			return err
		}
		// 把正在修正的这条替换成修正后的形状
		substituted := make([]interval.Span, 0, len(spans)+1)
		replaced := false
		for j := range spans {
			if spans[j].AttendanceID == edited.AttendanceID {
				substituted = append(substituted, edited.Span())
				replaced = true
				continue
			}
			substituted = append(substituted, spans[j].Span())
		}
		if !replaced {
			substituted = append(substituted, edited.Span())
		}

		if !coversEntry(t, substituted) {
			return ErrShiftShrinkBreaks
		}
	}
	return nil
}

// coversEntry 判断单条工时在给定考勤区间集合下是否仍被覆盖
// 进行中的工时没有终点，要求存在一条起点不晚于它的开放考勤区间
func coversEntry(t *model.TrackedTimeInterval, spans []interval.Span) bool {
	if t.EndAt == nil {
		for _, s := range spans {
			if s.End == nil && !s.Start.After(t.StartAt) {
				return true
			}
		}
		return false
	}
	return interval.Covers(t.StartAt, *t.EndAt, spans)
}
