package adapter

import (
	"context"

	"buildcost-premium/internal/domain/model"
)

// PaymentGateway is the hex port for the external payment provider.
// Order creation is the only capability the checkout core needs; capture
// and settlement happen entirely on the provider side.
type PaymentGateway interface {
	Name() string

	// CreateOrder registers a checkout attempt with the provider and
	// returns its order handle verbatim.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error)
}
