package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/service"
	"worktrack/backend/pkg/response"
)

// SettingsHandler 引擎配置模块 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get 获取引擎配置
// GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.settingsSvc.Get(c.Request.Context())
	if err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, cfg)
}

// Update 更新引擎配置
// PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateEngineSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.settingsSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSettingsError(c, err)
		return
	}

	response.OK(c, cfg)
}

// handleSettingsError 统一处理引擎配置模块业务错误
func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSettings):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrSettingsNotFound):
		response.NotFound(c, 18001, "引擎配置未初始化")
	default:
		response.InternalError(c)
	}
}
