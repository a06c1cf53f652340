package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/teamops_backend/internal/apperrors"
	"github.com/SscSPs/teamops_backend/internal/core/domain"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves an access token into a live principal.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error)
}

// AuthMiddleware creates a Gin middleware handler that validates bearer access tokens.
// The token is verified and the user's active status re-checked on every request.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Access token required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		principal, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Error("Failed to authenticate request", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.CodeInternal, "Internal server error"))
				return
			}
			logger.Warn("Authentication failed", slog.String("error", err.Error()))
			abortUnauthorized(c, apperrors.MessageOf(err, "Invalid or expired token"))
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", principal.UserID), slog.String("role", string(principal.Role)))
		ctx := WithPrincipal(c.Request.Context(), *principal)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeUnauthorized, msg))
}
