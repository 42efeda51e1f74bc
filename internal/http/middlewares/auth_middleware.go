package middlewares

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// RolePrefix turns a role claim into the authority string attached to the
// request context ("ADMIN" -> "ROLE_ADMIN").
const RolePrefix = "ROLE_"

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	ExtractEmail(token string) (string, error)
	ExtractRole(token string) (string, error)
	ValidateToken(token, expectedEmail string) bool
}

type AuthMiddleware struct {
	jwt TokenVerifier
	log *slog.Logger
}

func NewAuthMiddleware(jwt TokenVerifier, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, log: log}
}

// Authenticate runs once per request. It never rejects: a missing, expired or
// garbage bearer token just leaves the request without an identity, and any
// route-level policy decides what that means. Extraction failures are logged
// and swallowed.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

		email, err := m.jwt.ExtractEmail(raw)

		if err != nil {
			m.log.DebugContext(c.Request.Context(), "bearer token rejected", "err", err)
			c.Next()
			return
		}

		// do not overwrite an identity something upstream already attached

		if _, ok := EmailFromContext(c); ok {
			c.Next()
			return
		}

		role, err := m.jwt.ExtractRole(raw)

		if err != nil {
			m.log.DebugContext(c.Request.Context(), "bearer token rejected", "err", err)
			c.Next()
			return
		}

		if m.jwt.ValidateToken(raw, email) {
			c.Set(ctxEmailKey, email)
			c.Set(ctxRoleKey, role)
			c.Set(ctxAuthorityKey, RolePrefix+role)
		}

		c.Next()
	}
}

// Helpers so handlers don't need to know the magic keys.

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

func RoleFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

func AuthorityFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxAuthorityKey)
	if !ok {
		return "", false
	}
	authority, ok := v.(string)
	return authority, ok
}
