//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/usecase"
)

func TestOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	ident := &model.Identity{SubjectID: "a1b2c3d4-e5f6-7890-aaaa-bbbbccccdddd", Email: "u@example.com"}

	t.Run("resolves amount from the registry", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		var gotAmount int64
		var gotReceipt string
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error) {
			gotAmount = amountPaise
			gotReceipt = receipt
			return &model.Order{GatewayOrderID: "order_1", AmountPaise: amountPaise, Currency: currency, Receipt: receipt}, nil
		}
		uc := usecase.NewOrderUseCase(testRegistry(), gateway, newTestLogger())

		order, err := uc.Create(ctx, ident, "monthly")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAmount != 9900 {
			t.Errorf("expected registry amount 9900, gateway saw %d", gotAmount)
		}
		if order.GatewayOrderID != "order_1" {
			t.Errorf("gateway handle not returned verbatim: %+v", order)
		}
		if !strings.HasPrefix(gotReceipt, "rcpt_a1b2c3d4_") {
			t.Errorf("receipt should embed a truncated subject fragment, got %q", gotReceipt)
		}
	})

	t.Run("unknown plan issues no gateway call", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		uc := usecase.NewOrderUseCase(testRegistry(), gateway, newTestLogger())

		_, err := uc.Create(ctx, ident, "lifetime")
		if !errors.Is(err, domain.ErrInvalidPlan) {
			t.Fatalf("expected ErrInvalidPlan, got %v", err)
		}
		if gateway.Calls != 0 {
			t.Errorf("expected zero gateway calls, got %d", gateway.Calls)
		}
	})

	t.Run("gateway failure maps to ErrOrderCreationFailed", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (*model.Order, error) {
			return nil, errors.New("gateway 502")
		}
		uc := usecase.NewOrderUseCase(testRegistry(), gateway, newTestLogger())

		_, err := uc.Create(ctx, ident, "annual")
		if !errors.Is(err, domain.ErrOrderCreationFailed) {
			t.Fatalf("expected ErrOrderCreationFailed, got %v", err)
		}
	})

	t.Run("missing identity rejected", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		uc := usecase.NewOrderUseCase(testRegistry(), gateway, newTestLogger())

		if _, err := uc.Create(ctx, nil, "monthly"); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if gateway.Calls != 0 {
			t.Errorf("expected zero gateway calls, got %d", gateway.Calls)
		}
	})
}
