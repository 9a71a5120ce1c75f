package usecase

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/adapter"
	"buildcost-premium/internal/infra/logging"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type OrderUseCase interface {
	// Create resolves the plan price from the registry and registers an
	// order with the gateway. The caller's plan id is the only client input;
	// amounts are never read from the request.
	Create(ctx context.Context, identity *model.Identity, planID string) (*model.Order, error)
}

type orderUC struct {
	plans   *model.PlanRegistry
	gateway adapter.PaymentGateway
	log     *zerolog.Logger
}

func NewOrderUseCase(plans *model.PlanRegistry, gateway adapter.PaymentGateway, logger *zerolog.Logger) *orderUC {
	return &orderUC{plans: plans, gateway: gateway, log: logger}
}

func (u *orderUC) Create(ctx context.Context, identity *model.Identity, planID string) (*model.Order, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	plan, err := u.plans.Get(planID)
	if err != nil {
		logging.With(ctx, u.log).Warn().Str("plan_id", planID).Msg("order rejected: unknown plan")
		return nil, err
	}

	order, err := u.gateway.CreateOrder(ctx, plan.AmountPaise, plan.Currency, receiptFor(identity.SubjectID))
	if err != nil {
		logging.With(ctx, u.log).Error().Err(err).
			Str("provider", u.gateway.Name()).
			Str("plan_id", plan.ID).
			Msg("gateway order creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderCreationFailed, err)
	}

	logging.With(ctx, u.log).Info().
		Str("provider", u.gateway.Name()).
		Str("plan_id", plan.ID).
		Int64("amount_paise", plan.AmountPaise).
		Str("gateway_order_id", order.GatewayOrderID).
		Msg("order created")
	return order, nil
}

// receiptFor builds a short, diagnosable receipt from a truncated subject
// fragment and a time-ordered ULID. Collisions are tolerated; the gateway
// owns idempotency.
func receiptFor(subjectID string) string {
	frag := subjectID
	if len(frag) > 8 {
		frag = frag[:8]
	}
	return fmt.Sprintf("rcpt_%s_%s", frag, ulid.Make().String())
}
