package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
	"github.com/phrazzld/scry-cardgen/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token and stores the user ID in the
// request context. Requests without a valid token get a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrMissingUserID):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
