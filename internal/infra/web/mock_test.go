//go:build !integration

package web_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
	"buildcost-premium/internal/domain/ports/repository"
)

var errTest = errors.New("store unavailable")

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memVerifier accepts a fixed token and rejects everything else.
type memVerifier struct {
	token string
	ident *model.Identity
	calls int
}

var _ adapter.IdentityVerifier = (*memVerifier)(nil)

func (v *memVerifier) Name() string { return "mem" }

func (v *memVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	v.calls++
	if token == v.token {
		cp := *v.ident
		return &cp, nil
	}
	return nil, domain.ErrUnauthenticated
}

// memEntitlementRepo is the in-memory store backing handler tests.
type memEntitlementRepo struct {
	mu          sync.Mutex
	records     map[string]*model.Entitlement
	upsertCalls int
	upsertErr   error
}

var _ repository.EntitlementRepository = (*memEntitlementRepo)(nil)

func newMemEntitlementRepo() *memEntitlementRepo {
	return &memEntitlementRepo{records: make(map[string]*model.Entitlement)}
}

func (m *memEntitlementRepo) Upsert(ctx context.Context, userID string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.records[userID] = &model.Entitlement{UserID: userID, HasPaid: true, UpdatedAt: updatedAt}
	return nil
}

func (m *memEntitlementRepo) FindByUserID(ctx context.Context, userID string) (*model.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ent, ok := m.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ent
	return &cp, nil
}

// countingGateway wraps the noop gateway to count order calls.
type countingGateway struct {
	mu    sync.Mutex
	calls int
	fail  bool
	seq   int
}

var _ adapter.PaymentGateway = (*countingGateway)(nil)

func (g *countingGateway) Name() string { return "counting" }

func (g *countingGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.fail {
		return nil, context.DeadlineExceeded
	}
	g.seq++
	return &model.Order{
		GatewayOrderID: "order_test1",
		AmountPaise:    amountPaise,
		Currency:       currency,
		Receipt:        receipt,
	}, nil
}
