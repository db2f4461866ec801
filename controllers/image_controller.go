// Package controllers provides HTTP handlers for photo editing.
// File: controllers/image_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
	"go-holo-council/services"
)

// ---------------- Image Controller ----------------

// ImageController forwards photo edit requests to the external editor.
type ImageController struct {
	Images *services.ImageService
}

// NewImageController initializes a new instance of ImageController.
func NewImageController(images *services.ImageService) *ImageController {
	return &ImageController{Images: images}
}

type imageEditRequest struct {
	Image    string `json:"image"`
	Prompt   string `json:"prompt"`
	MimeType string `json:"mimeType"`
}

// EditImage runs one edit round-trip. The edited image is returned to the
// caller; persisting it to a singer or operator is a separate admin call.
func (ic *ImageController) EditImage(c *gin.Context) {
	var req imageEditRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image or prompt"})
		return
	}
	result, err := ic.Images.Edit(c.Request.Context(), services.EditRequest{
		Image:    req.Image,
		Prompt:   req.Prompt,
		MimeType: req.MimeType,
	})
	if err != nil {
		if errors.Is(err, services.ErrEditorUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image editor unavailable"})
			return
		}
		logger.Error.Printf("EditImage: edit failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requestId": result.RequestID, "image": result.Image})
}
