package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contactly-be/internal/entities"
	"contactly-be/internal/jwt"
	"contactly-be/internal/logger"
	"contactly-be/internal/service"
)

// Context keys set by AuthMiddleware
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type ProfileLoader interface {
	Profile(ctx context.Context, userID string) (*entities.User, error)
}

// AuthMiddleware verifies the bearer token and attaches the caller to the context.
func AuthMiddleware(tokens TokenValidator, users ProfileLoader, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: No token provided!"})
			return
		}

		// "Bearer <token>"
		var token string
		if parts := strings.Split(header, " "); len(parts) > 1 {
			token = parts[1]
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized!"})
			return
		}

		user, err := users.Profile(c.Request.Context(), claims.UserID)
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized!"})
			return
		}
		if err != nil {
			log.Error("failed to load authenticated user", "user_id", claims.UserID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}

// CurrentUserID returns the id of the user attached by AuthMiddleware, or ""
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
