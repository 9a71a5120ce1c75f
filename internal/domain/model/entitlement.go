package model

import "time"

// Entitlement is the durable record of whether a user has paid for premium
// access. It is keyed by the identity provider's subject id and is only
// ever written by the verification flow after a signature check.
type Entitlement struct {
	UserID    string
	HasPaid   bool
	UpdatedAt time.Time
}
