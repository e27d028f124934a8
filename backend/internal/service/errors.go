package service

import (
	"errors"

	"worktrack/backend/internal/model"
)

// ── 工时引擎业务错误 ──

var (
	// 参数类
	ErrInvalidInterval = errors.New("区间终点必须晚于起点")
	ErrInvalidSettings = errors.New("引擎配置不合法")

	// 考勤类
	ErrAttendanceNotFound = errors.New("考勤区间不存在")
	ErrShiftAlreadyOpen   = errors.New("该员工已有在岗的考勤区间")
	ErrShiftNotOpen       = errors.New("该员工没有在岗的考勤区间")
	ErrShiftShrinkBreaks  = errors.New("修正后的考勤区间无法覆盖已登记的工时")

	// 工时类
	ErrTrackedTimeNotFound = errors.New("工时区间不存在")
	ErrEntryAlreadyOpen    = errors.New("该员工已有进行中的计时")
	ErrNoOpenEntry         = errors.New("该员工没有进行中的计时")

	// 其他
	ErrWorkOrderNotFound = errors.New("工单不存在")
	ErrSettingsNotFound  = errors.New("引擎配置未初始化")
)

// OverlapError 候选工时区间与既有区间重叠
// 附带冲突的区间，便于调用方在响应里展示
type OverlapError struct {
	Conflicts []model.TrackedTimeInterval
}

func (e *OverlapError) Error() string {
	return "工时区间与既有工时区间重叠"
}

// NotCoveredError 候选工时区间未被考勤区间并集完整覆盖
// Nearest 是距离候选最近的考勤区间，作为排障提示（可能为 nil）
type NotCoveredError struct {
	Nearest *model.AttendanceInterval
}

func (e *NotCoveredError) Error() string {
	return "工时区间未被考勤区间完整覆盖"
}
