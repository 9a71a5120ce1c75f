package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOperationFailed = errors.New("operation failed")

	// Checkout flow errors
	ErrUnauthenticated          = errors.New("unauthenticated")
	ErrInvalidPlan              = errors.New("unknown plan")
	ErrOrderCreationFailed      = errors.New("order creation failed")
	ErrInvalidSignature         = errors.New("invalid payment signature")
	ErrEntitlementPersistFailed = errors.New("entitlement persist failed")
)
