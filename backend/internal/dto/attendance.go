package dto

import "time"

// ── 考勤模块 DTO ──

// OpenShiftRequest 上班打卡请求
type OpenShiftRequest struct {
	WorkerID string    `json:"worker_id" binding:"required,uuid"`
	StartAt  time.Time `json:"start_at"  binding:"required"`
}

// CloseShiftRequest 下班打卡请求
// Timezone 是客户端时区提示，缺失或非法时回退到服务端默认时区
type CloseShiftRequest struct {
	WorkerID string    `json:"worker_id" binding:"required,uuid"`
	EndAt    time.Time `json:"end_at"    binding:"required"`
	Timezone string    `json:"timezone"  binding:"omitempty,max=64"`
}

// UpdateAttendanceRequest 管理员修正考勤区间请求
type UpdateAttendanceRequest struct {
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
	Timezone string     `json:"timezone" binding:"omitempty,max=64"`
}

// AttendanceResponse 考勤区间响应
type AttendanceResponse struct {
	ID             string  `json:"id"`
	WorkerID       string  `json:"worker_id"`
	StartAt        string  `json:"start_at"`
	EndAt          *string `json:"end_at,omitempty"`
	EffectiveHours *string `json:"effective_hours,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}
