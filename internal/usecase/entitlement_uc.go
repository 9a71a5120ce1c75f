package usecase

import (
	"context"
	"errors"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/repository"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

type EntitlementUseCase interface {
	// Get returns the entitlement for a user. A user with no record is not
	// entitled; that is a normal answer, not an error. Store failures are
	// surfaced so clients can fail closed.
	Get(ctx context.Context, userID string) (*model.Entitlement, error)
}

type entitlementUC struct {
	entitlements repository.EntitlementRepository
}

func NewEntitlementUseCase(entitlements repository.EntitlementRepository) *entitlementUC {
	return &entitlementUC{entitlements: entitlements}
}

func (u *entitlementUC) Get(ctx context.Context, userID string) (*model.Entitlement, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	ent, err := u.entitlements.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &model.Entitlement{UserID: userID, HasPaid: false}, nil
		}
		return nil, err
	}
	return ent, nil
}
