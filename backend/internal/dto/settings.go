package dto

// ── 引擎配置模块 DTO ──

// UpdateEngineSettingsRequest 更新引擎配置请求
// BreakStart/BreakEnd 允许置为空串（表示关闭休息扣除）
type UpdateEngineSettingsRequest struct {
	BreakStart    *string `json:"break_start"     binding:"omitempty,max=5"`
	BreakEnd      *string `json:"break_end"       binding:"omitempty,max=5"`
	Timezone      *string `json:"timezone"        binding:"omitempty,max=64"`
	LabourRate    *string `json:"labour_rate"`
	OverheadRate  *string `json:"overhead_rate"`
	SupplyRatePct *string `json:"supply_rate_pct"`
}

// EngineSettingsResponse 引擎配置响应
type EngineSettingsResponse struct {
	BreakStart    string `json:"break_start"`
	BreakEnd      string `json:"break_end"`
	Timezone      string `json:"timezone"`
	LabourRate    string `json:"labour_rate"`
	OverheadRate  string `json:"overhead_rate"`
	SupplyRatePct string `json:"supply_rate_pct"`
	UpdatedAt     string `json:"updated_at"`
}
