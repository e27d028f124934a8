package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/service"
	"worktrack/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// OpenShift 上班打卡
// POST /api/v1/attendance/open
func (h *AttendanceHandler) OpenShift(c *gin.Context) {
	var req dto.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.OpenShift(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, resp)
}

// CloseShift 下班打卡
// POST /api/v1/attendance/close
func (h *AttendanceHandler) CloseShift(c *gin.Context) {
	var req dto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.CloseShift(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, resp)
}

// Update 管理员修正考勤区间
// PUT /api/v1/attendance/:id
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, resp)
}

// Get 查询单条考勤区间
// GET /api/v1/attendance/:id
func (h *AttendanceHandler) Get(c *gin.Context) {
	resp, err := h.attendanceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, resp)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 10001, "区间终点必须晚于起点")
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 16001, "考勤区间不存在")
	case errors.Is(err, service.ErrShiftAlreadyOpen):
		response.Error(c, http.StatusConflict, 16002, "该员工已有在岗的考勤区间")
	case errors.Is(err, service.ErrShiftNotOpen):
		response.Error(c, http.StatusConflict, 16003, "该员工没有在岗的考勤区间")
	case errors.Is(err, service.ErrShiftShrinkBreaks):
		response.Error(c, http.StatusConflict, 16004, "修正后的考勤区间无法覆盖已登记的工时")
	default:
		response.InternalError(c)
	}
}
