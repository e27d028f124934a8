package service

import (
	"time"

	"github.com/shopspring/decimal"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/model"
)

// ── DTO 转换辅助 ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func formatDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func toAttendanceResponse(a *model.AttendanceInterval) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:             a.AttendanceID,
		WorkerID:       a.WorkerID,
		StartAt:        formatTime(a.StartAt),
		EndAt:          formatTimePtr(a.EndAt),
		EffectiveHours: formatDecimalPtr(a.EffectiveHours),
		CreatedAt:      formatTime(a.CreatedAt),
		UpdatedAt:      formatTime(a.UpdatedAt),
	}
}

func toTrackedTimeResponse(t *model.TrackedTimeInterval) *dto.TrackedTimeResponse {
	return &dto.TrackedTimeResponse{
		ID:             t.TrackedTimeID,
		WorkerID:       t.WorkerID,
		WorkOrderID:    t.WorkOrderID,
		StartAt:        formatTime(t.StartAt),
		EndAt:          formatTimePtr(t.EndAt),
		EffectiveHours: formatDecimalPtr(t.EffectiveHours),
		HourlyRate:     t.HourlyRate.String(),
		CreatedAt:      formatTime(t.CreatedAt),
		UpdatedAt:      formatTime(t.UpdatedAt),
	}
}

func toLineItemResponses(items []model.DerivedLineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LineItemResponse{
			Kind:          item.Kind,
			QuantityHours: item.QuantityHours.String(),
			UnitRate:      item.UnitRate.String(),
			Amount:        item.Amount.String(),
		})
	}
	return out
}
