package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/partsdesk/partsdesk/internal/auth"
)

// adminClaimsKey is the context key for verified admin claims.
const adminClaimsKey contextKey = "admin_claims"

// AdminConfig holds configuration for the admin bearer middleware.
type AdminConfig struct {
	Logger *slog.Logger
	Issuer *auth.TokenIssuer
}

// AdminAuth returns middleware that requires a valid admin bearer token.
// Applied to the status-update endpoints and /api/admin/verify.
func AdminAuth(cfg AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, "MISSING_TOKEN", "Admin token required")
				return
			}

			claims, err := cfg.Issuer.Verify(token)
			if err != nil {
				cfg.Logger.Warn("admin token rejected",
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "INVALID_TOKEN", "Admin token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminClaims retrieves verified admin claims from context, or nil.
func GetAdminClaims(ctx context.Context) *auth.AdminClaims {
	claims, _ := ctx.Value(adminClaimsKey).(*auth.AdminClaims)
	return claims
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
