package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"buildcost-premium/internal/domain"
)

func TestGoTrueVerifier_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" {
			t.Errorf("service key header missing")
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-uuid-9","email":"u@example.com"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	v, err := NewGoTrueVerifier(srv.URL, "service-key")
	if err != nil {
		t.Fatalf("NewGoTrueVerifier: %v", err)
	}
	ctx := context.Background()

	t.Run("accepted token resolves identity", func(t *testing.T) {
		ident, err := v.Verify(ctx, "good-token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ident.SubjectID != "user-uuid-9" || ident.Email != "u@example.com" {
			t.Errorf("unexpected identity: %+v", ident)
		}
	})

	t.Run("provider rejection maps to ErrUnauthenticated", func(t *testing.T) {
		if _, err := v.Verify(ctx, "expired-token"); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})
}
