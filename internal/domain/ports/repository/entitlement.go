package repository

import (
	"context"
	"time"

	"buildcost-premium/internal/domain/model"
)

// EntitlementRepository persists the per-user paid flag.
//
// Upsert only ever sets has_paid = TRUE; there is no downgrade write path,
// so last-write-wins semantics on updated_at are safe under concurrent
// retries of the same callback.
type EntitlementRepository interface {
	Upsert(ctx context.Context, userID string, updatedAt time.Time) error
	FindByUserID(ctx context.Context, userID string) (*model.Entitlement, error)
}
