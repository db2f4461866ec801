// Package controllers handles operator authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
	"go-holo-council/services"
)

// AuthController authenticates operators against the synced directory and
// manages their sessions.
type AuthController struct {
	Auth *services.AuthService
}

// NewAuthController initializes a new instance of AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// Login checks (username, code) against the Operator Directory. A rejection
// is a transient 401 with no lockout; the client clears it after a moment.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed login request"})
		return
	}
	if req.Username == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	identity, err := ac.Auth.Authenticate(req.Username, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid operator name or access code"})
			return
		}
		logger.Error.Printf("Login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error, please try again"})
		return
	}

	session := sessions.Default(c)
	session.Set("user", identity.Username)
	session.Set("displayName", identity.DisplayName)
	session.Set("isAdmin", identity.IsPrivileged)
	if err := session.Save(); err != nil {
		logger.Error.Println("Login: Failed to save session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error, please try again"})
		return
	}

	logger.Info.Printf("Login: Operator %s authenticated (admin=%v)", identity.Username, identity.IsPrivileged)
	c.JSON(http.StatusOK, identity)
}

// Logout clears the operator session.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if user := session.Get("user"); user != nil {
		logger.Info.Printf("Logout: Operator %v logged out", user)
	}
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: Error saving session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session terminated"})
}

// Me reports the authenticated identity bound to the session.
func (ac *AuthController) Me(c *gin.Context) {
	session := sessions.Default(c)
	user, _ := session.Get("user").(string)
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, services.Identity{
		Username:     user,
		DisplayName:  sessionString(c, "displayName"),
		IsPrivileged: session.Get("isAdmin") == true,
	})
}

// sessionString reads a string session value, empty when unset.
func sessionString(c *gin.Context, key string) string {
	v, _ := sessions.Default(c).Get(key).(string)
	return v
}

// sessionIdentity extracts the caller's username and privilege flag.
func sessionIdentity(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	user, _ := session.Get("user").(string)
	isAdmin, _ := session.Get("isAdmin").(bool)
	return user, isAdmin
}
