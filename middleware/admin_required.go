// Package middleware - middleware that checks if the operator is the admin.
// file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
)

// AdminRequired is a middleware that checks if the operator holds the
// reserved privileged identity.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		isAdmin, ok := session.Get("isAdmin").(bool)

		logger.Debug.Printf("AdminRequired Middleware - isAdmin=%v, ok=%v", isAdmin, ok)

		if !ok || !isAdmin {
			logger.Warn.Println("AdminRequired Middleware - Unauthorized attempt blocked")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
