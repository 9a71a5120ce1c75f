package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"buildcost-premium/internal/domain"
	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/domain/ports/repository"
	"buildcost-premium/internal/infra/logging"
	"buildcost-premium/internal/infra/security"
)

// Compile-time check
var _ VerificationUseCase = (*verificationUC)(nil)

type VerificationUseCase interface {
	// VerifyAndEntitle authenticates a gateway callback and, only on a valid
	// signature, upserts the paid flag for the authenticated identity. The
	// subject id comes exclusively from the auth layer, never from the
	// callback payload.
	VerifyAndEntitle(ctx context.Context, identity *model.Identity, cb model.PaymentCallback) error
}

type verificationUC struct {
	signatures   *security.SignatureVerifier
	entitlements repository.EntitlementRepository
	log          *zerolog.Logger
	now          func() time.Time
}

func NewVerificationUseCase(signatures *security.SignatureVerifier, entitlements repository.EntitlementRepository, logger *zerolog.Logger) *verificationUC {
	return &verificationUC{
		signatures:   signatures,
		entitlements: entitlements,
		log:          logger,
		now:          time.Now,
	}
}

func (u *verificationUC) VerifyAndEntitle(ctx context.Context, identity *model.Identity, cb model.PaymentCallback) error {
	defer logging.TraceDuration(u.log, "VerificationUC.VerifyAndEntitle")()

	if identity.IsZero() {
		return domain.ErrUnauthenticated
	}
	if err := cb.Validate(); err != nil {
		logging.With(ctx, u.log).Warn().Msg("malformed payment callback")
		return err
	}

	// Signature check strictly precedes any store write.
	if !u.signatures.Verify(cb.OrderID, cb.PaymentID, cb.Signature) {
		logging.With(ctx, u.log).Warn().
			Str("gateway_order_id", cb.OrderID).
			Str("gateway_payment_id", cb.PaymentID).
			Msg("payment signature rejected")
		return domain.ErrInvalidSignature
	}

	// Idempotent: retried callbacks for the same user converge on the same
	// state, with updated_at reflecting the latest call.
	if err := u.entitlements.Upsert(ctx, identity.SubjectID, u.now()); err != nil {
		logging.With(ctx, u.log).Error().Err(err).
			Str("gateway_order_id", cb.OrderID).
			Msg("signature valid but entitlement write failed")
		return fmt.Errorf("%w: %v", domain.ErrEntitlementPersistFailed, err)
	}

	logging.With(ctx, u.log).Info().
		Str("gateway_order_id", cb.OrderID).
		Str("gateway_payment_id", cb.PaymentID).
		Msg("payment verified, entitlement recorded")
	return nil
}
