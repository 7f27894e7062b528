package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/auth"
	"github.com/internos/internos-api/internal/constants"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/models"
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Set(constants.ContextKeyFullName, claims.FullName)
		c.Set(constants.ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// RequireRoles rejects callers whose token role is not in the allowed set.
// It must run after RequireAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	r, ok := role.(models.UserRole)
	return r, ok
}
