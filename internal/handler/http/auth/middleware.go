package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext returns the authenticated subject, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(ctxUser).(string)
	return u, ok
}

// RequireAdmin rejects requests without a valid admin bearer token with 401,
// and tokens carrying another role with 403.
func RequireAdmin(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, prefix) {
				recordDenied(resultUnauthorized)
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := a.Verify(strings.TrimSpace(strings.TrimPrefix(authz, prefix)))
			if err != nil {
				logging.FromContext(r.Context()).Warn("token rejected", slog.Any("error", err))
				recordDenied(resultUnauthorized)
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if claims.Role != RoleAdmin {
				recordDenied(resultForbidden)
				respond.Message(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
