package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Attendance  AttendanceRepository
	TrackedTime TrackedTimeRepository
	LineItem    LineItemRepository
	WorkOrder   WorkOrderRepository
	Settings    SettingsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Attendance:  NewAttendanceRepo(db),
		TrackedTime: NewTrackedTimeRepo(db),
		LineItem:    NewLineItemRepo(db),
		WorkOrder:   NewWorkOrderRepo(db),
		Settings:    NewSettingsRepo(db),
	}
}
