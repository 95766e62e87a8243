package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/auth"
	"buildxpert/internal/logger"
	"buildxpert/internal/models"
)

const (
	// SessionCookieName is the primary cookie issued at login.
	SessionCookieName = "bx_session"
	// LegacyCookieName is still accepted from sessions issued before
	// the cookie rename.
	LegacyCookieName = "token"
)

// ResolveCredential extracts the raw access token from a request.
// Priority is fixed: Authorization Bearer header, then the session
// cookie, then the legacy cookie. Every route, including the WebSocket
// handshake, goes through this one function.
func ResolveCredential(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	if cookie, err := c.Cookie(LegacyCookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// AuthMiddleware rejects requests without a valid access token and
// stores the authenticated identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ResolveCredential(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves an identity when a valid credential
// is present but lets anonymous requests through. Handlers that serve
// both public and authenticated views use it.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := ResolveCredential(c); token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("userRole", claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after
// AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		role, _ := roleVal.(string)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly is shorthand for the back-office routes.
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}
