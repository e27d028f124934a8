package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"worktrack/backend/internal/model"
)

func TestRecalculateAggregatesClosedEntries(t *testing.T) {
	env := newTestEnv()
	env.addOrder("wo-1")
	env.addShift("w1", "2024-03-04 08:00", "2024-03-04 18:00")
	env.addEntry("w1", "wo-1", "2024-03-04 08:00", "2024-03-04 10:00", "2")
	env.addEntry("w1", "wo-1", "2024-03-04 13:00", "2024-03-04 16:30", "3.5")

	items, err := env.svc.LineItem.Recalculate(context.Background(), "wo-1")
	if err != nil {
		t.Fatalf("重算应当成功: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("应当产出 3 条行项目, got %d", len(items))
	}

	// 5.5h × 80 = 440, 5.5h × 20 = 110, 440 × 10% = 44
	labour := env.lineItem.get("wo-1", "labour")
	if labour == nil || !labour.Amount.Equal(decimal.NewFromInt(440)) {
		t.Errorf("labour 金额应为 440, got %v", labour)
	}
	overhead := env.lineItem.get("wo-1", "overhead")
	if overhead == nil || !overhead.Amount.Equal(decimal.NewFromInt(110)) {
		t.Errorf("overhead 金额应为 110, got %v", overhead)
	}
	supply := env.lineItem.get("wo-1", "supply")
	if supply == nil || !supply.Amount.Equal(decimal.NewFromInt(44)) {
		t.Errorf("supply 金额应为 44, got %v", supply)
	}
	if env.orders.recalcCalls != 1 {
		t.Errorf("工单总额应当刷新 1 次, got %d", env.orders.recalcCalls)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.addOrder("wo-1")
	env.addEntry("w1", "wo-1", "2024-03-04 08:00", "2024-03-04 10:00", "2")

	ctx := context.Background()
	if _, err := env.svc.LineItem.Recalculate(ctx, "wo-1"); err != nil {
		t.Fatalf("首次重算应当成功: %v", err)
	}
	first := env.lineItem.get("wo-1", "labour").Amount

	if _, err := env.svc.LineItem.Recalculate(ctx, "wo-1"); err != nil {
		t.Fatalf("二次重算应当成功: %v", err)
	}
	second := env.lineItem.get("wo-1", "labour").Amount

	// 全量汇总而非增量累加，重复触发收敛到同一结果
	if !first.Equal(second) {
		t.Errorf("重复重算结果应当一致: %v != %v", first, second)
	}
}

func TestRecalculateIgnoresOpenEntries(t *testing.T) {
	env := newTestEnv()
	env.addOrder("wo-1")
	env.addEntry("w1", "wo-1", "2024-03-04 08:00", "2024-03-04 10:00", "2")
	// 进行中的区间不计入
	_ = env.tracked.Create(context.Background(), &model.TrackedTimeInterval{
		WorkerID:    "w2",
		WorkOrderID: "wo-1",
		StartAt:     ts("2024-03-04 13:00"),
	})

	if _, err := env.svc.LineItem.Recalculate(context.Background(), "wo-1"); err != nil {
		t.Fatalf("重算应当成功: %v", err)
	}
	labour := env.lineItem.get("wo-1", "labour")
	if !labour.QuantityHours.Equal(decimal.NewFromInt(2)) {
		t.Errorf("仅已收尾工时计入汇总, 应为 2, got %v", labour.QuantityHours)
	}
}

func TestRecalculateZeroesSupplyWhenRateUnset(t *testing.T) {
	env := newTestEnv()
	env.settings.cfg.SupplyRatePct = decimal.Zero
	env.addOrder("wo-1")
	env.addEntry("w1", "wo-1", "2024-03-04 08:00", "2024-03-04 10:00", "2")

	if _, err := env.svc.LineItem.Recalculate(context.Background(), "wo-1"); err != nil {
		t.Fatalf("重算应当成功: %v", err)
	}

	// 费率归零时 supply 行清零而不删除
	supply := env.lineItem.get("wo-1", "supply")
	if supply == nil {
		t.Fatal("supply 行应当保留")
	}
	if !supply.Amount.IsZero() || !supply.QuantityHours.IsZero() || !supply.UnitRate.IsZero() {
		t.Errorf("supply 行应当全部清零, got %+v", supply)
	}
}

func TestRecalculateWithoutSettings(t *testing.T) {
	env := newTestEnv()
	env.settings.cfg = nil
	env.addOrder("wo-1")

	_, err := env.svc.LineItem.Recalculate(context.Background(), "wo-1")
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("配置未初始化应当返回 ErrSettingsNotFound, got %v", err)
	}
}
