package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole is a stricter, opt-in guard for routes that must not stay
// permissive. The catalog routes ship without it; the gate alone decides
// nothing.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
			})
			return
		}

		if role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Insufficient role",
			})
			return
		}

		c.Next()
	}
}
