//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
	"buildcost-premium/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// MockEntitlementRepo is an in-memory entitlement store with optional hooks.
type MockEntitlementRepo struct {
	mu      sync.Mutex
	records map[string]*model.Entitlement

	UpsertCalls int
	UpsertFunc  func(ctx context.Context, userID string, updatedAt time.Time) error
	FindFunc    func(ctx context.Context, userID string) (*model.Entitlement, error)
}

var _ repository.EntitlementRepository = (*MockEntitlementRepo)(nil)

func NewMockEntitlementRepo() *MockEntitlementRepo {
	return &MockEntitlementRepo{records: make(map[string]*model.Entitlement)}
}

func (m *MockEntitlementRepo) Upsert(ctx context.Context, userID string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, updatedAt)
	}
	m.records[userID] = &model.Entitlement{UserID: userID, HasPaid: true, UpdatedAt: updatedAt}
	return nil
}

func (m *MockEntitlementRepo) FindByUserID(ctx context.Context, userID string) (*model.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	ent, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ent
	return &cp, nil
}

// Record returns the stored entitlement without the hook path.
func (m *MockEntitlementRepo) Record(userID string) *model.Entitlement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[userID]
}

// MockPaymentGateway records calls and delegates to an optional hook.
type MockPaymentGateway struct {
	mu    sync.Mutex
	Calls int

	CreateOrderFunc func(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error)
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) Name() string { return "mock" }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountPaise, currency, receipt)
	}
	return &model.Order{
		GatewayOrderID: "order_mock1",
		AmountPaise:    amountPaise,
		Currency:       currency,
		Receipt:        receipt,
	}, nil
}

func testRegistry() *model.PlanRegistry {
	monthly, _ := model.NewPlan("monthly", 9900, "INR", "1 month")
	annual, _ := model.NewPlan("annual", 79900, "INR", "12 months")
	reg, _ := model.NewPlanRegistry([]*model.Plan{monthly, annual})
	return reg
}
