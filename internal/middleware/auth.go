package middleware

import (
	"net/http"
	"strings"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "userId"
	RoleKey   = "role"
)

func AuthMiddleware(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		id, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, id.UserID)
		c.Set(RoleKey, id.Role)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != security.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admins only"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, or 0 outside AuthMiddleware.
func UserID(c *gin.Context) uint {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
