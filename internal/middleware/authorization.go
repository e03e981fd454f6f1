package middleware

import (
	"net/http"

	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the caller's role having the given
// permission. It must run after AuthMiddleware.
func RequirePermission(authz service.AuthorizationService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			c.Abort()
			return
		}

		allowed, err := authz.CheckPermission(user.Role, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized as admin"})
			c.Abort()
			return
		}

		c.Next()
	}
}
