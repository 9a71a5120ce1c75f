package adapter

import (
	"context"

	"buildcost-premium/internal/domain/model"
)

// IdentityVerifier resolves a bearer token to a stable identity. Every
// failure mode (missing, expired, malformed, forged) maps to
// domain.ErrUnauthenticated; callers never learn why a token was rejected.
type IdentityVerifier interface {
	Name() string
	Verify(ctx context.Context, token string) (*model.Identity, error)
}
