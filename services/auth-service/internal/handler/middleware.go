package handler

import (
	"context"
	"net/http"

	authtypes "github.com/campusroom/campusroom-api/services/auth-service/pkg/types"
)

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// sessionAuth validates the session cookie and stores its claims on the
// request context.
func (h *Handler) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			h.respondError(w, http.StatusUnauthorized, "missing session")
			return
		}

		claims := &authtypes.SessionClaims{}
		if _, err := h.jwtAuth.ValidateTokenWithClaims(
			cookie.Value,
			h.authServiceCfg.Token.SessionTokenSecret,
			claims,
		); err != nil {
			h.respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), sessionClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionClaimsFromContext(ctx context.Context) (*authtypes.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*authtypes.SessionClaims)
	return claims, ok
}
