package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"worktrack/backend/internal/dto"
	"worktrack/backend/internal/model"
	"worktrack/backend/internal/repository"
)

// SettingsService 引擎配置业务接口
type SettingsService interface {
	Get(ctx context.Context) (*dto.EngineSettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateEngineSettingsRequest, callerID string) (*dto.EngineSettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *settingsService) Get(ctx context.Context) (*dto.EngineSettingsResponse, error) {
	cfg, err := s.repo.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("查询引擎配置失败", zap.Error(err))
		return nil, err
	}

	return toSettingsResponse(cfg), nil
}

// ────────────────────── Update ──────────────────────

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateEngineSettingsRequest, callerID string) (*dto.EngineSettingsResponse, error) {
	cfg, err := s.repo.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("查询引擎配置失败", zap.Error(err))
		return nil, err
	}

	if req.BreakStart != nil {
		cfg.BreakStart = *req.BreakStart
	}
	if req.BreakEnd != nil {
		cfg.BreakEnd = *req.BreakEnd
	}
	if req.Timezone != nil {
		cfg.Timezone = *req.Timezone
	}
	if req.LabourRate != nil {
		rate, err := parseRate(*req.LabourRate, "labour_rate")
		if err != nil {
			return nil, err
		}
		cfg.LabourRate = rate
	}
	if req.OverheadRate != nil {
		rate, err := parseRate(*req.OverheadRate, "overhead_rate")
		if err != nil {
			return nil, err
		}
		cfg.OverheadRate = rate
	}
	if req.SupplyRatePct != nil {
		rate, err := parseRate(*req.SupplyRatePct, "supply_rate_pct")
		if err != nil {
			return nil, err
		}
		cfg.SupplyRatePct = rate
	}

	if err := validateSettings(cfg); err != nil {
		return nil, err
	}

	cfg.UpdatedBy = &callerID

	if err := s.repo.Settings.Update(ctx, cfg); err != nil {
		s.logger.Error("更新引擎配置失败", zap.Error(err))
		return nil, err
	}

	return toSettingsResponse(cfg), nil
}

// ── 内部辅助方法 ──

func parseRate(raw, field string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s 不是合法数值", ErrInvalidSettings, field)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s 不能为负数", ErrInvalidSettings, field)
	}
	return rate, nil
}

func validateSettings(cfg *model.EngineSettings) error {
	// 休息时段成对出现：要么都为空（关闭扣除），要么都是合法挂钟时间
	if (cfg.BreakStart == "") != (cfg.BreakEnd == "") {
		return fmt.Errorf("%w: break_start 与 break_end 必须同时配置或同时留空", ErrInvalidSettings)
	}
	if cfg.BreakStart != "" {
		if _, err := time.Parse("15:04", cfg.BreakStart); err != nil {
			return fmt.Errorf("%w: break_start 必须是 HH:MM", ErrInvalidSettings)
		}
		if _, err := time.Parse("15:04", cfg.BreakEnd); err != nil {
			return fmt.Errorf("%w: break_end 必须是 HH:MM", ErrInvalidSettings)
		}
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("%w: timezone 不是合法时区", ErrInvalidSettings)
		}
	}
	return nil
}

func toSettingsResponse(cfg *model.EngineSettings) *dto.EngineSettingsResponse {
	return &dto.EngineSettingsResponse{
		BreakStart:    cfg.BreakStart,
		BreakEnd:      cfg.BreakEnd,
		Timezone:      cfg.Timezone,
		LabourRate:    cfg.LabourRate.String(),
		OverheadRate:  cfg.OverheadRate.String(),
		SupplyRatePct: cfg.SupplyRatePct.String(),
		UpdatedAt:     formatTime(cfg.UpdatedAt),
	}
}
