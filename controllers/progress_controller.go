// Package controllers serves the participation dashboards.
// File: controllers/progress_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-holo-council/services"
)

// ProgressController exposes the completion dashboards: per-evening counts
// and the operator roster with progress flags.
type ProgressController struct {
	Progress *services.ProgressService
}

// NewProgressController initializes a new instance of ProgressController.
func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// GetCheck returns done/remaining counts per evening, computed over the
// directory excluding the reserved admin operator.
func (pc *ProgressController) GetCheck(c *gin.Context) {
	stats := pc.Progress.EveningStats()
	c.JSON(http.StatusOK, gin.H{"evenings": stats})
}

// GetWarriors returns the non-admin roster with display names, photos and
// per-evening finalization flags.
func (pc *ProgressController) GetWarriors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"operators": pc.Progress.Roster()})
}
