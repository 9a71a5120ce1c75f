package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/repository"
	"buildcost-premium/internal/infra/metrics"
	red "buildcost-premium/internal/infra/redis"
)

var _ repository.EntitlementRepository = (*entitlementRepoCacheDecorator)(nil)

// entitlementRepoCacheDecorator caches entitlement reads in Redis. The write
// path invalidates before hitting Postgres so a freshly verified payment is
// never gated behind a stale "unpaid" entry for more than one in-flight read.
type entitlementRepoCacheDecorator struct {
	inner repository.EntitlementRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewEntitlementRepoCacheDecorator(inner repository.EntitlementRepository, cache red.RedisClient, ttl time.Duration) repository.EntitlementRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &entitlementRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func entitlementKey(userID string) string { return fmt.Sprintf("entitlement:id:%s", userID) }

func (d *entitlementRepoCacheDecorator) Upsert(ctx context.Context, userID string, updatedAt time.Time) error {
	_ = d.cache.Del(ctx, entitlementKey(userID))
	if err := d.inner.Upsert(ctx, userID, updatedAt); err != nil {
		return err
	}
	// Warm the cache with the state we just wrote.
	ent := &model.Entitlement{UserID: userID, HasPaid: true, UpdatedAt: updatedAt}
	if bytes, err := json.Marshal(ent); err == nil {
		_ = d.cache.Set(ctx, entitlementKey(userID), bytes, d.ttl)
	}
	return nil
}

func (d *entitlementRepoCacheDecorator) FindByUserID(ctx context.Context, userID string) (*model.Entitlement, error) {
	key := entitlementKey(userID)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var ent model.Entitlement
		if json.Unmarshal([]byte(val), &ent) == nil {
			metrics.IncCacheRequest("entitlement", "hit")
			return &ent, nil
		}
	}

	metrics.IncCacheRequest("entitlement", "miss")
	ent, err := d.inner.FindByUserID(ctx, userID)
	if err != nil {
		// Misses and store errors are not cached; absent records must stay
		// cheap to re-check right after a first purchase.
		return nil, err
	}
	if bytes, err := json.Marshal(ent); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return ent, nil
}
