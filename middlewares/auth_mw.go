package middlewares

import (
	"net/http"
	"strings"

	"movienight/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextHostID   = "hostId"
	ContextHostRole = "hostRole"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextHostID, claims.HostID)
		c.Set(ContextHostRole, claims.Role)
		c.Next()
	}
}

// HostOnly guards the mutation surface: only authenticated hosts pass.
func HostOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextHostRole)
		if !exists || role != "host" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Hosts only"})
			return
		}
		c.Next()
	}
}
