package handler

import "worktrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Attendance  *AttendanceHandler
	TrackedTime *TrackedTimeHandler
	Settings    *SettingsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Attendance:  NewAttendanceHandler(svc.Attendance),
		TrackedTime: NewTrackedTimeHandler(svc.TrackedTime),
		Settings:    NewSettingsHandler(svc.Settings),
	}
}
