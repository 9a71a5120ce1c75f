package model

import (
	"encoding/hex"

	"buildcost-premium/internal/domain"
)

// Order is the gateway's handle for one checkout attempt. Orders are not
// persisted locally; their lifetime is a single checkout session.
type Order struct {
	GatewayOrderID string
	AmountPaise    int64
	Currency       string
	Receipt        string
}

// PaymentCallback is the signed payload produced by the gateway's checkout
// widget. It is untrusted until the signature is verified and is consumed
// exactly once.
type PaymentCallback struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Validate rejects malformed callback shapes before any HMAC work is done.
// The signature must be a 64-char hex digest (SHA-256 output).
func (c PaymentCallback) Validate() error {
	if c.OrderID == "" || c.PaymentID == "" || c.Signature == "" {
		return domain.ErrInvalidArgument
	}
	if len(c.Signature) != hex.EncodedLen(32) {
		return domain.ErrInvalidArgument
	}
	if _, err := hex.DecodeString(c.Signature); err != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}
