package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"worktrack/backend/config"
	"worktrack/backend/internal/model"
	"worktrack/backend/internal/repository"
	pkgerrors "worktrack/backend/pkg/errors"
)

// ── 内存版 Repository 实现，供 Service 单测使用 ──

type mockAttendanceRepo struct {
	seq   int
	items map[string]*model.AttendanceInterval
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{items: make(map[string]*model.AttendanceInterval)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.AttendanceInterval) error {
	m.seq++
	a.AttendanceID = "att-" + strconv.Itoa(m.seq)
	a.Version = 1
	cp := *a
	m.items[a.AttendanceID] = &cp
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceInterval, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAttendanceRepo) GetOpenByWorker(_ context.Context, workerID string) (*model.AttendanceInterval, error) {
	for _, a := range m.items {
		if a.WorkerID == workerID && a.EndAt == nil {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) FindIntersecting(_ context.Context, workerID string, start time.Time, end *time.Time) ([]model.AttendanceInterval, error) {
	var list []model.AttendanceInterval
	for _, a := range m.items {
		if a.WorkerID != workerID {
			continue
		}
		if a.EndAt != nil && !a.EndAt.After(start) {
			continue
		}
		if end != nil && !a.StartAt.Before(*end) {
			continue
		}
		list = append(list, *a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartAt.Before(list[j].StartAt) })
	return list, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, a *model.AttendanceInterval) error {
	cur, ok := m.items[a.AttendanceID]
	if !ok || cur.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version++
	cp := *a
	m.items[a.AttendanceID] = &cp
	return nil
}

type mockTrackedTimeRepo struct {
	seq   int
	items map[string]*model.TrackedTimeInterval
}

func newMockTrackedTimeRepo() *mockTrackedTimeRepo {
	return &mockTrackedTimeRepo{items: make(map[string]*model.TrackedTimeInterval)}
}

func (m *mockTrackedTimeRepo) Create(_ context.Context, t *model.TrackedTimeInterval) error {
	m.seq++
	t.TrackedTimeID = "tt-" + strconv.Itoa(m.seq)
	t.Version = 1
	cp := *t
	m.items[t.TrackedTimeID] = &cp
	return nil
}

func (m *mockTrackedTimeRepo) GetByID(_ context.Context, id string) (*model.TrackedTimeInterval, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTrackedTimeRepo) GetOpenByWorker(_ context.Context, workerID string) (*model.TrackedTimeInterval, error) {
	for _, t := range m.items {
		if t.WorkerID == workerID && t.EndAt == nil {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrackedTimeRepo) FindIntersecting(_ context.Context, workerID string, start time.Time, end *time.Time, excludeID string) ([]model.TrackedTimeInterval, error) {
	var list []model.TrackedTimeInterval
	for _, t := range m.items {
		if t.WorkerID != workerID || t.TrackedTimeID == excludeID {
			continue
		}
		if t.EndAt != nil && !t.EndAt.After(start) {
			continue
		}
		if end != nil && !t.StartAt.Before(*end) {
			continue
		}
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartAt.Before(list[j].StartAt) })
	return list, nil
}

func (m *mockTrackedTimeRepo) FindByWorkerInRange(ctx context.Context, workerID string, start time.Time, end *time.Time) ([]model.TrackedTimeInterval, error) {
	return m.FindIntersecting(ctx, workerID, start, end, "")
}

func (m *mockTrackedTimeRepo) SumClosedHours(_ context.Context, workOrderID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range m.items {
		if t.WorkOrderID == workOrderID && t.EndAt != nil && t.EffectiveHours != nil {
			total = total.Add(*t.EffectiveHours)
		}
	}
	return total, nil
}

func (m *mockTrackedTimeRepo) Update(_ context.Context, t *model.TrackedTimeInterval) error {
	cur, ok := m.items[t.TrackedTimeID]
	if !ok || cur.Version != t.Version {
		return pkgerrors.ErrOptimisticLock
	}
	t.Version++
	cp := *t
	m.items[t.TrackedTimeID] = &cp
	return nil
}

func (m *mockTrackedTimeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.items, id)
	return nil
}

type mockLineItemRepo struct {
	failUpsert error
	items      map[string]*model.DerivedLineItem // key: workOrderID + "/" + kind
}

func newMockLineItemRepo() *mockLineItemRepo {
	return &mockLineItemRepo{items: make(map[string]*model.DerivedLineItem)}
}

func (m *mockLineItemRepo) Upsert(_ context.Context, item *model.DerivedLineItem) error {
	if m.failUpsert != nil {
		return m.failUpsert
	}
	cp := *item
	m.items[item.WorkOrderID+"/"+item.Kind] = &cp
	return nil
}

func (m *mockLineItemRepo) ListByOrder(_ context.Context, workOrderID string) ([]model.DerivedLineItem, error) {
	var list []model.DerivedLineItem
	for _, item := range m.items {
		if item.WorkOrderID == workOrderID {
			list = append(list, *item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Kind < list[j].Kind })
	return list, nil
}

func (m *mockLineItemRepo) get(workOrderID, kind string) *model.DerivedLineItem {
	return m.items[workOrderID+"/"+kind]
}

type mockWorkOrderRepo struct {
	orders      map[string]*model.WorkOrder
	recalcCalls int
}

func newMockWorkOrderRepo() *mockWorkOrderRepo {
	return &mockWorkOrderRepo{orders: make(map[string]*model.WorkOrder)}
}

func (m *mockWorkOrderRepo) GetByID(_ context.Context, id string) (*model.WorkOrder, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockWorkOrderRepo) RecalculateTotal(_ context.Context, _ string) error {
	m.recalcCalls++
	return nil
}

type mockSettingsRepo struct {
	getErr error
	cfg    *model.EngineSettings
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.EngineSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.cfg
	return &cp, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, cfg *model.EngineSettings) error {
	cp := *cfg
	m.cfg = &cp
	return nil
}

// ── 测试脚手架 ──

type testEnv struct {
	att      *mockAttendanceRepo
	tracked  *mockTrackedTimeRepo
	lineItem *mockLineItemRepo
	orders   *mockWorkOrderRepo
	settings *mockSettingsRepo
	svc      *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		att:      newMockAttendanceRepo(),
		tracked:  newMockTrackedTimeRepo(),
		lineItem: newMockLineItemRepo(),
		orders:   newMockWorkOrderRepo(),
		settings: &mockSettingsRepo{cfg: defaultSettings()},
	}
	repo := &repository.Repository{
		Attendance:  env.att,
		TrackedTime: env.tracked,
		LineItem:    env.lineItem,
		WorkOrder:   env.orders,
		Settings:    env.settings,
	}
	cfg := &config.Config{}
	cfg.Engine.DefaultTimezone = "UTC"
	env.svc = NewService(cfg, repo, zap.NewNop())
	return env
}

func defaultSettings() *model.EngineSettings {
	return &model.EngineSettings{
		Singleton:     true,
		BreakStart:    "12:00",
		BreakEnd:      "13:00",
		Timezone:      "UTC",
		LabourRate:    decimal.NewFromInt(80),
		OverheadRate:  decimal.NewFromInt(20),
		SupplyRatePct: decimal.NewFromInt(10),
	}
}

func (e *testEnv) addOrder(id string) {
	e.orders.orders[id] = &model.WorkOrder{WorkOrderID: id, OrderNumber: "WO-" + id, Status: "open"}
}

// addShift 直接写入一条考勤区间，end 为空串表示仍在岗
func (e *testEnv) addShift(workerID, start, end string) string {
	a := &model.AttendanceInterval{WorkerID: workerID, StartAt: ts(start)}
	if end != "" {
		endAt := ts(end)
		a.EndAt = &endAt
	}
	_ = e.att.Create(context.Background(), a)
	return a.AttendanceID
}

// addEntry 直接写入一条已收尾的工时区间
func (e *testEnv) addEntry(workerID, orderID, start, end string, hours string) string {
	startAt := ts(start)
	endAt := ts(end)
	h, _ := decimal.NewFromString(hours)
	t := &model.TrackedTimeInterval{
		WorkerID:       workerID,
		WorkOrderID:    orderID,
		StartAt:        startAt,
		EndAt:          &endAt,
		EffectiveHours: &h,
		HourlyRate:     decimal.NewFromInt(80),
	}
	_ = e.tracked.Create(context.Background(), t)
	return t.TrackedTimeID
}

// ts 解析 "2006-01-02 15:04" 形式的 UTC 时间串
func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic("测试时间串非法: " + s)
	}
	return t
}
