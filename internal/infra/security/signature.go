package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureVerifier authenticates gateway payment callbacks. The expected
// digest is HMAC-SHA256 over "orderID|paymentID" under the key secret held
// only by the server, rendered as lowercase hex.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(secret)}
}

// Verify reports whether signature matches the expected digest for the
// order/payment pair. Comparison is constant time.
func (v *SignatureVerifier) Verify(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderID))
	mac.Write([]byte("|"))
	mac.Write([]byte(paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
