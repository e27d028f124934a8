package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/service"
	"worktrack/backend/pkg/response"
)

// TrackedTimeHandler 工时模块 HTTP 处理器
type TrackedTimeHandler struct {
	trackedSvc service.TrackedTimeService
}

// NewTrackedTimeHandler 创建 TrackedTimeHandler
func NewTrackedTimeHandler(trackedSvc service.TrackedTimeService) *TrackedTimeHandler {
	return &TrackedTimeHandler{trackedSvc: trackedSvc}
}

// ClockIn 开始计时
// POST /api/v1/time-entries/clock-in
func (h *TrackedTimeHandler) ClockIn(c *gin.Context) {
	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.trackedSvc.ClockIn(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.Created(c, resp)
}

// ClockOut 结束计时
// POST /api/v1/time-entries/clock-out
func (h *TrackedTimeHandler) ClockOut(c *gin.Context) {
	var req dto.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.trackedSvc.ClockOut(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Create 手工补录工时
// POST /api/v1/time-entries
func (h *TrackedTimeHandler) Create(c *gin.Context) {
	var req dto.CreateTrackedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.trackedSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.Created(c, resp)
}

// Update 修正工时区间
// PUT /api/v1/time-entries/:id
func (h *TrackedTimeHandler) Update(c *gin.Context) {
	var req dto.UpdateTrackedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.trackedSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Delete 删除工时区间
// DELETE /api/v1/time-entries/:id
func (h *TrackedTimeHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.trackedSvc.Delete(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.OK(c, resp)
}

// Get 查询单条工时区间
// GET /api/v1/time-entries/:id
func (h *TrackedTimeHandler) Get(c *gin.Context) {
	resp, err := h.trackedSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTrackedTimeError(c, err)
		return
	}

	response.OK(c, resp)
}

// handleTrackedTimeError 统一处理工时模块业务错误
func (h *TrackedTimeHandler) handleTrackedTimeError(c *gin.Context, err error) {
	var overlap *service.OverlapError
	var notCovered *service.NotCoveredError

	switch {
	case errors.Is(err, service.ErrInvalidInterval):
		response.BadRequest(c, 10001, "区间终点必须晚于起点")
	case errors.Is(err, service.ErrTrackedTimeNotFound):
		response.NotFound(c, 17001, "工时区间不存在")
	case errors.As(err, &overlap):
		response.ErrorWithDetails(c, http.StatusConflict, 17002,
			"工时区间与既有工时区间重叠",
			gin.H{"conflicts": briefFromTracked(overlap.Conflicts)},
		)
	case errors.As(err, &notCovered):
		response.ErrorWithDetails(c, http.StatusConflict, 17003,
			"工时区间未被考勤区间完整覆盖",
			gin.H{"nearest_attendance": briefFromAttendance(notCovered.Nearest)},
		)
	case errors.Is(err, service.ErrEntryAlreadyOpen):
		response.Error(c, http.StatusConflict, 17002, "该员工已有进行中的计时")
	case errors.Is(err, service.ErrNoOpenEntry):
		response.Error(c, http.StatusConflict, 17004, "该员工没有进行中的计时")
	case errors.Is(err, service.ErrWorkOrderNotFound):
		response.NotFound(c, 18002, "工单不存在")
	default:
		response.InternalError(c)
	}
}
