package dto

import "time"

// ── 工时模块 DTO ──

// ClockInRequest 工时开始计时请求
type ClockInRequest struct {
	WorkerID    string    `json:"worker_id"     binding:"required,uuid"`
	WorkOrderID string    `json:"work_order_id" binding:"required,uuid"`
	StartAt     time.Time `json:"start_at"      binding:"required"`
}

// ClockOutRequest 工时结束计时请求
type ClockOutRequest struct {
	WorkerID string    `json:"worker_id" binding:"required,uuid"`
	EndAt    time.Time `json:"end_at"    binding:"required"`
	Timezone string    `json:"timezone"  binding:"omitempty,max=64"`
}

// CreateTrackedTimeRequest 手工补录工时请求（两端已知）
type CreateTrackedTimeRequest struct {
	WorkerID    string    `json:"worker_id"     binding:"required,uuid"`
	WorkOrderID string    `json:"work_order_id" binding:"required,uuid"`
	StartAt     time.Time `json:"start_at"      binding:"required"`
	EndAt       time.Time `json:"end_at"        binding:"required"`
	Timezone    string    `json:"timezone"      binding:"omitempty,max=64"`
}

// UpdateTrackedTimeRequest 修正工时区间请求
type UpdateTrackedTimeRequest struct {
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
	Timezone string     `json:"timezone" binding:"omitempty,max=64"`
}

// TrackedTimeResponse 工时区间响应
type TrackedTimeResponse struct {
	ID             string  `json:"id"`
	WorkerID       string  `json:"worker_id"`
	WorkOrderID    string  `json:"work_order_id"`
	StartAt        string  `json:"start_at"`
	EndAt          *string `json:"end_at,omitempty"`
	EffectiveHours *string `json:"effective_hours,omitempty"`
	HourlyRate     string  `json:"hourly_rate"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// LineItemResponse 派生行项目响应
type LineItemResponse struct {
	Kind          string `json:"kind"`
	QuantityHours string `json:"quantity_hours"`
	UnitRate      string `json:"unit_rate"`
	Amount        string `json:"amount"`
}

// TrackedTimeMutationResponse 工时变更响应
// LineItems 是变更后最新重算出的行项目；重算失败时为空并在
// Warnings 里说明，变更本身不回滚
type TrackedTimeMutationResponse struct {
	Entry     *TrackedTimeResponse `json:"entry,omitempty"`
	LineItems []LineItemResponse   `json:"line_items,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
}

// IntervalBrief 区间简要信息（错误详情里附带）
type IntervalBrief struct {
	ID      string  `json:"id"`
	StartAt string  `json:"start_at"`
	EndAt   *string `json:"end_at,omitempty"`
}
