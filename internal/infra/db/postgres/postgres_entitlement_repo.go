package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/repository"
)

var _ repository.EntitlementRepository = (*entitlementRepo)(nil)

type entitlementRepo struct{ pool *pgxpool.Pool }

func NewEntitlementRepo(pool *pgxpool.Pool) *entitlementRepo {
	return &entitlementRepo{pool: pool}
}

// Upsert records a paid entitlement for userID. The flag only ever moves to
// TRUE, so the upsert is commutative under retried callbacks.
func (r *entitlementRepo) Upsert(ctx context.Context, userID string, updatedAt time.Time) error {
	if userID == "" {
		return domain.ErrInvalidArgument
	}
	const q = `
INSERT INTO entitlements (id, has_paid, updated_at)
VALUES ($1, TRUE, $2)
ON CONFLICT (id) DO UPDATE SET has_paid = TRUE, updated_at = EXCLUDED.updated_at;`

	if _, err := r.pool.Exec(ctx, q, userID, updatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22") {
			return domain.ErrInvalidArgument
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *entitlementRepo) FindByUserID(ctx context.Context, userID string) (*model.Entitlement, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	const q = `SELECT id, has_paid, updated_at FROM entitlements WHERE id=$1;`

	ent := &model.Entitlement{}
	err := r.pool.QueryRow(ctx, q, userID).Scan(&ent.UserID, &ent.HasPaid, &ent.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrOperationFailed
	}
	return ent, nil
}
