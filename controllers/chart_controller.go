// Package controllers serves the ranked chart views.
// File: controllers/chart_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-holo-council/models"
	"go-holo-council/services"
)

// ChartController computes rankings from the current document.
type ChartController struct {
	Tally   *services.TallyService
	Contest *services.ContestService
}

// NewChartController initializes a new instance of ChartController.
func NewChartController(tally *services.TallyService, contest *services.ContestService) *ChartController {
	return &ChartController{Tally: tally, Contest: contest}
}

// GetChart returns the ranking for one view ("total" or "1".."5"). A locked
// view yields an explicit locked result for non-privileged callers — never
// partial data.
func (cc *ChartController) GetChart(c *gin.Context) {
	_, isAdmin := sessionIdentity(c)

	view, err := models.ParseView(c.Param("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := cc.Contest.Snapshot()
	entries, err := cc.Tally.Rank(view, doc, isAdmin)
	if err != nil {
		if errors.Is(err, services.ErrChartLocked) {
			c.JSON(http.StatusLocked, gin.H{"view": view.Key(), "locked": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":    view.Key(),
		"entries": entries,
	})
}

// GetChartSummary reports each view's lock state plus an "any locked" flag
// the navigation uses to badge the chart section.
func (cc *ChartController) GetChartSummary(c *gin.Context) {
	doc := cc.Contest.Snapshot()

	anyLocked := false
	views := gin.H{}
	for _, view := range []models.View{models.ViewTotal, 1, 2, 3, 4, 5} {
		locked := doc.LockedCharts[view.Key()]
		views[view.Key()] = locked
		anyLocked = anyLocked || locked
	}

	c.JSON(http.StatusOK, gin.H{
		"views":     views,
		"anyLocked": anyLocked,
	})
}
