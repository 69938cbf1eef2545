package httpapi

import (
	"context"
	"net/http"
	"strings"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/domain"
)

type authCtxKey int

const identityKey authCtxKey = iota

// requireAuth verifies the Authorization header and puts the token's identity
// on the request context. The Bearer prefix is accepted but not required;
// mobile clients send the raw token.
func (a *api) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get("Authorization"))
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		if raw == "" {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}

		ident, err := a.tokens.Verify(raw)
		if err != nil {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func CurrentIdentity(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(auth.Identity)
	return ident, ok
}
