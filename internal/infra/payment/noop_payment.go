package payment

import (
	"context"
	"fmt"
	"sync"

	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// NoopPaymentGateway is a simple in-memory gateway for tests and dev mode.
type NoopPaymentGateway struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]int64 // gateway order id -> amount (paise)
}

func NewNoopPaymentGateway() *NoopPaymentGateway {
	return &NoopPaymentGateway{orders: make(map[string]int64)}
}

func (g *NoopPaymentGateway) Name() string { return "noop" }

func (g *NoopPaymentGateway) next() string {
	g.seq++
	return fmt.Sprintf("order_noop%d", g.seq)
}

func (g *NoopPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next()
	g.orders[id] = amountPaise
	return &model.Order{
		GatewayOrderID: id,
		AmountPaise:    amountPaise,
		Currency:       currency,
		Receipt:        receipt,
	}, nil
}

// AmountFor reports the amount recorded for an order id, for assertions.
func (g *NoopPaymentGateway) AmountFor(orderID string) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	amt, ok := g.orders[orderID]
	return amt, ok
}
