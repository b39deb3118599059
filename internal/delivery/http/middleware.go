package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"minilms-backend/internal/authz"
	"minilms-backend/internal/domain"
	"minilms-backend/pkg/utils"
)

// Authenticate parses the Bearer token when one is present and stores the
// caller's identity in the request context. Requests without a header pass
// through anonymously; public routes still work and RequireAction decides
// what anonymous callers may do. A malformed or expired token is rejected
// outright rather than treated as anonymous.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth header format"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAction enforces the authorization gate for one action. It is the
// only place 401 vs 403 is decided, so clients can always tell "log in"
// apart from "not allowed".
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, authenticated := currentRole(c)
		switch authz.CanPerform(role, authenticated, action) {
		case authz.DenyUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case authz.DenyForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden access"})
		default:
			c.Next()
		}
	}
}

func currentRole(c *gin.Context) (domain.Role, bool) {
	role, exists := c.Get("role")
	if !exists {
		return "", false
	}
	return domain.Role(role.(string)), true
}
