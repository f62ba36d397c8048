package middleware

import (
	"net/http"

	"trip_logger/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid role type in token"})
			return
		}

		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// AdminMiddleware restricts a route to head drivers
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleHeadDriver)
}

// DriverMiddleware allows both drivers and head drivers
func DriverMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleDriver, model.RoleHeadDriver)
}
