package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/model"
	"worktrack/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// ── 错误详情辅助 ──

func briefFromTracked(list []model.TrackedTimeInterval) []dto.IntervalBrief {
	out := make([]dto.IntervalBrief, 0, len(list))
	for i := range list {
		out = append(out, dto.IntervalBrief{
			ID:      list[i].TrackedTimeID,
			StartAt: list[i].StartAt.UTC().Format(time.RFC3339),
			EndAt:   formatEnd(list[i].EndAt),
		})
	}
	return out
}

func briefFromAttendance(a *model.AttendanceInterval) *dto.IntervalBrief {
	if a == nil {
		return nil
	}
	return &dto.IntervalBrief{
		ID:      a.AttendanceID,
		StartAt: a.StartAt.UTC().Format(time.RFC3339),
		EndAt:   formatEnd(a.EndAt),
	}
}

func formatEnd(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
