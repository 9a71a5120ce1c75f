package security

import "testing"

// Fixed vector: HMAC-SHA256("order_ABC|pay_XYZ", key "testsecret").
const (
	vectorOrderID   = "order_ABC"
	vectorPaymentID = "pay_XYZ"
	vectorDigest    = "93f5a785992a41d68e10e2e08c1c7ca5692e58e24bdedbc5f0616c97fc4438aa"
)

func TestSignatureVerifier_KnownVector(t *testing.T) {
	v := NewSignatureVerifier("testsecret")

	if !v.Verify(vectorOrderID, vectorPaymentID, vectorDigest) {
		t.Fatal("expected known vector to verify")
	}

	// Deterministic across repeated calls.
	for i := 0; i < 3; i++ {
		if !v.Verify(vectorOrderID, vectorPaymentID, vectorDigest) {
			t.Fatalf("verification flipped on call %d", i)
		}
	}
}

func TestSignatureVerifier_RejectsTamperedInput(t *testing.T) {
	v := NewSignatureVerifier("testsecret")

	cases := map[string]struct {
		orderID, paymentID, sig string
	}{
		"changed order id":   {"order_ABD", vectorPaymentID, vectorDigest},
		"changed payment id": {vectorOrderID, "pay_XYZ2", vectorDigest},
		"changed signature":  {vectorOrderID, vectorPaymentID, "03f5a785992a41d68e10e2e08c1c7ca5692e58e24bdedbc5f0616c97fc4438aa"},
		"uppercase digest":   {vectorOrderID, vectorPaymentID, "93F5A785992A41D68E10E2E08C1C7CA5692E58E24BDEDBC5F0616C97FC4438AA"},
		"empty signature":    {vectorOrderID, vectorPaymentID, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if v.Verify(tc.orderID, tc.paymentID, tc.sig) {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestSignatureVerifier_WrongSecret(t *testing.T) {
	v := NewSignatureVerifier("wrongsecret")
	if v.Verify(vectorOrderID, vectorPaymentID, vectorDigest) {
		t.Fatal("digest computed under another secret must not verify")
	}
}

func TestSignatureVerifier_PipeBoundary(t *testing.T) {
	// The pipe separator must keep ("order_ABC|pay_XYZ", "") distinct from
	// ("order_ABC", "pay_XYZ").
	v := NewSignatureVerifier("testsecret")
	if v.Verify(vectorOrderID+"|"+vectorPaymentID, "", vectorDigest) {
		t.Fatal("shifted pipe boundary must not verify against the original digest")
	}
}
