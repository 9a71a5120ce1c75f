package web

import (
	"context"
	"net/http"
	"strings"

	"buildcost-premium/internal/domain/model"
	"buildcost-premium/internal/infra/logging"
)

type identityCtxKey struct{}

// IdentityFrom returns the identity the auth gate attached to the request
// context. It is the ONLY source of "whose entitlement is this"; request
// bodies are never consulted.
func IdentityFrom(ctx context.Context) *model.Identity {
	ident, _ := ctx.Value(identityCtxKey{}).(*model.Identity)
	return ident
}

func withIdentity(ctx context.Context, ident *model.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, ident)
}

// RequireAuth rejects requests without a valid bearer token before any
// downstream logic runs. Token resolution is delegated to the identity
// provider via the verifier port.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			return
		}

		ident, err := s.identity.Verify(r.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			logging.With(r.Context(), s.log).Warn().
				Str("provider", s.identity.Name()).
				Msg("bearer token rejected")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			return
		}

		ctx := withIdentity(r.Context(), ident)
		ctx = logging.WithUserID(ctx, logging.Redact(ident.SubjectID, s.dev))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
