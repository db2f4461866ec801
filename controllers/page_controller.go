// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
	"go-holo-council/services"
	"go-holo-council/websocket"
)

var (
	// ApplicationURL is the externally reachable address of the board.
	ApplicationURL string
	// WebsocketURL is handed to clients so they can attach to the stream.
	WebsocketURL string
)

// SetConfig stores the runtime URLs read from the environment.
func SetConfig(applicationURL, websocketURL string) {
	ApplicationURL = applicationURL
	WebsocketURL = websocketURL
}

// Health answers load-balancer health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Config tells a fresh client where the stream lives and who it is.
func Config(c *gin.Context) {
	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"applicationUrl": ApplicationURL,
		"websocketUrl":   WebsocketURL,
		"username":       session.Get("user"),
		"displayName":    session.Get("displayName"),
		"isAdmin":        session.Get("isAdmin") == true,
	})
}

// GetQRCode serves a PNG QR code with the terminal address.
func GetQRCode(c *gin.Context) {
	png, err := services.GenerateQRCode(256, 256, nil)
	if err != nil {
		logger.Error.Printf("GetQRCode: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "QR code generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ContestUpdates upgrades the request to the live snapshot stream.
func ContestUpdates(c *gin.Context) {
	websocket.ServeWs(c.Writer, c.Request)
}
