// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the request carries an authenticated operator
// session. Requests without one are rejected with 401; the API is JSON, so
// no redirect.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("user")

	if user == nil {
		logger.Warn.Println("AuthRequired: No operator in session, rejecting request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		c.Abort()
		return
	}

	logger.Debug.Printf("[AuthRequired] Operator %v authenticated - proceeding", user)
	c.Next()
}
