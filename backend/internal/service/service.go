package service

import (
	"go.uber.org/zap"

	"worktrack/backend/config"
	"worktrack/backend/internal/repository"
	"worktrack/backend/pkg/keymutex"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Attendance  AttendanceService
	TrackedTime TrackedTimeService
	LineItem    LineItemService
	Settings    SettingsService
}

// NewService 创建 Service 聚合
// 考勤与工时共用同一把员工级锁：两类校验读的是同一个员工的区间集合，
// 必须在同一个锁域内串行
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	locks := keymutex.New()
	zones := newZoneResolver(cfg, logger)
	lineItem := NewLineItemService(repo, logger)

	return &Service{
		Attendance:  NewAttendanceService(repo, locks, zones, logger),
		TrackedTime: NewTrackedTimeService(repo, lineItem, locks, zones, logger),
		LineItem:    lineItem,
		Settings:    NewSettingsService(repo, logger),
	}
}
