package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// AuthMiddleware extracts the bearer token, verifies it and resolves the
// user record for downstream handlers. Missing, malformed, tampered and
// expired tokens are indistinguishable to the client: all yield 401. A
// valid token for a user that no longer exists yields 403.
func AuthMiddleware(auth service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				respondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				respondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			userID, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				respondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := auth.UserByID(r.Context(), userID)
			if err != nil {
				if err == repository.ErrUserNotFound {
					logger.Warn("Token references unknown user", zap.String("user_id", userID.String()))
					respondWithError(w, http.StatusForbidden, "access denied")
					return
				}
				logger.Error("Failed to resolve user", zap.Error(err))
				respondWithError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)

			logger.Debug("User authenticated",
				zap.String("user_id", user.ID.String()),
				zap.String("role", string(user.Role)),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCurrentUser extracts the authenticated user from the request context
func GetCurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*domain.User)
	return user, ok
}
