package service

import (
	"context"
	"errors"
	"testing"

	"worktrack/backend/internal/dto"
)

func strPtr(s string) *string { return &s }

func TestGetSettings(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Settings.Get(context.Background())
	if err != nil {
		t.Fatalf("查询配置应当成功: %v", err)
	}
	if resp.BreakStart != "12:00" || resp.BreakEnd != "13:00" {
		t.Errorf("休息时段不符: %s-%s", resp.BreakStart, resp.BreakEnd)
	}
	if resp.LabourRate != "80" {
		t.Errorf("人工费率应为 80, got %s", resp.LabourRate)
	}
}

func TestGetSettingsUninitialized(t *testing.T) {
	env := newTestEnv()
	env.settings.cfg = nil

	_, err := env.svc.Settings.Get(context.Background())
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("配置未初始化应当返回 ErrSettingsNotFound, got %v", err)
	}
}

func TestUpdateSettingsPersistsChanges(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		BreakStart: strPtr("11:30"),
		BreakEnd:   strPtr("12:30"),
		LabourRate: strPtr("95.5"),
	}, "admin")
	if err != nil {
		t.Fatalf("更新配置应当成功: %v", err)
	}
	if resp.BreakStart != "11:30" || resp.BreakEnd != "12:30" {
		t.Errorf("休息时段未更新: %s-%s", resp.BreakStart, resp.BreakEnd)
	}
	if resp.LabourRate != "95.5" {
		t.Errorf("人工费率应为 95.5, got %s", resp.LabourRate)
	}
	if env.settings.cfg.UpdatedBy == nil || *env.settings.cfg.UpdatedBy != "admin" {
		t.Error("应当记录操作人")
	}
}

func TestUpdateSettingsClearsBreakWindow(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		BreakStart: strPtr(""),
		BreakEnd:   strPtr(""),
	}, "admin")
	if err != nil {
		t.Fatalf("成对清空休息时段应当成功: %v", err)
	}
	if resp.BreakStart != "" || resp.BreakEnd != "" {
		t.Errorf("休息时段应当已清空: %s-%s", resp.BreakStart, resp.BreakEnd)
	}
}

func TestUpdateSettingsRejectsHalfBreakPair(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		BreakEnd: strPtr(""),
	}, "admin")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("只清空半边休息时段应当返回 ErrInvalidSettings, got %v", err)
	}
}

func TestUpdateSettingsRejectsBadWallClock(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		BreakStart: strPtr("25:00"),
	}, "admin")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("非法挂钟时间应当返回 ErrInvalidSettings, got %v", err)
	}
}

func TestUpdateSettingsRejectsBadTimezone(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		Timezone: strPtr("Mars/Olympus"),
	}, "admin")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("非法时区应当返回 ErrInvalidSettings, got %v", err)
	}
}

func TestUpdateSettingsRejectsNegativeRate(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Settings.Update(context.Background(), &dto.UpdateEngineSettingsRequest{
		LabourRate: strPtr("-1"),
	}, "admin")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("负费率应当返回 ErrInvalidSettings, got %v", err)
	}
}
