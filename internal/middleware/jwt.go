package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/reqctx"
	"pawstails/internal/services"
	helpers "pawstails/internal/utils/helpres"
)

// JWTAuth rejects requests without a valid bearer token and stores the
// token's username and role in the request context.
func JWTAuth(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			log := logger.WithCtx(r.Context())
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("JWTAuth: missing access token")
				helpers.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := auth.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Warn("JWTAuth: invalid or expired token", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := reqctx.WithUsername(r.Context(), claims.Username)
			ctx = reqctx.WithRole(ctx, claims.Role)
			logger.WithCtx(ctx).Debug("JWTAuth: token valid", zap.String("role", claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
