// Package controllers provides HTTP handlers for the admin console.
// File: controllers/admin_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
	"go-holo-council/models"
	"go-holo-council/services"
)

// ---------------- Admin Controller ----------------

// AdminController provides admin operations for managing the roster, the
// operator directory, votes, and the lock/visibility gates.
type AdminController struct {
	Contest  *services.ContestService
	Settings *services.SettingsService
}

// NewAdminController initializes a new instance of AdminController.
func NewAdminController(contest *services.ContestService, settings *services.SettingsService) *AdminController {
	return &AdminController{Contest: contest, Settings: settings}
}

// requireAdmin re-checks privilege inside the handler. The route group is
// already gated, but management endpoints stay defensive.
func requireAdmin(c *gin.Context) bool {
	isAdmin, ok := sessions.Default(c).Get("isAdmin").(bool)
	if !ok || !isAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	return true
}

// ---------------- operator management ----------------

type operatorRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Code        string `json:"code"`
	Photo       string `json:"photo"`
	OldUsername string `json:"oldUsername"`
}

// AddOperator registers a new operator in the directory.
func (ac *AdminController) AddOperator(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req operatorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing operator fields"})
		return
	}
	if err := ac.Contest.AddOperator(req.Username, req.DisplayName, req.Code, req.Photo, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Operator added"})
}

// UpdateOperator edits an operator; a changed username cascades as
// delete-then-add, dropping the old identity's ballots.
func (ac *AdminController) UpdateOperator(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req operatorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.OldUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing operator fields"})
		return
	}
	if err := ac.Contest.UpdateOperator(req.OldUsername, req.Username, req.DisplayName, req.Code, req.Photo, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Operator updated"})
}

// DeleteOperator removes an operator with full cascade. The reserved admin
// identity is refused.
func (ac *AdminController) DeleteOperator(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	username := c.Param("username")
	if username == models.AdminUsername {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The admin operator cannot be deleted"})
		return
	}
	if err := ac.Contest.DeleteOperator(username, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info.Printf("DeleteOperator: %s removed by admin", username)
	c.JSON(http.StatusOK, gin.H{"message": "Operator deleted"})
}

// SetOperatorPhoto attaches a photo blob to an operator.
func (ac *AdminController) SetOperatorPhoto(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req operatorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Photo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo"})
		return
	}
	if err := ac.Contest.SetOperatorPhoto(c.Param("username"), req.Photo, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo updated"})
}

// ---------------- roster management ----------------

type singerRequest struct {
	Name      string `json:"name"`
	Song      string `json:"song"`
	CoverSong string `json:"coverSong"`
	Photo     string `json:"photo"`
}

// AddSinger appends a contestant to the roster.
func (ac *AdminController) AddSinger(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req singerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing singer fields"})
		return
	}
	singer, err := ac.Contest.AddSinger(req.Name, req.Song, req.CoverSong, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, singer)
}

// UpdateSingerPhoto attaches a photo blob to a contestant.
func (ac *AdminController) UpdateSingerPhoto(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	singerID, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req singerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Photo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo"})
		return
	}
	if err := ac.Contest.UpdateSingerPhoto(singerID, req.Photo, true); err != nil {
		c.JSON(singerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo updated"})
}

// DeleteSinger removes a contestant; its votes and hidden-list entries go
// in the same write.
func (ac *AdminController) DeleteSinger(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	singerID, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := ac.Contest.DeleteSinger(singerID, true); err != nil {
		c.JSON(singerStatus(err), gin.H{"error": err.Error()})
		return
	}
	logger.Info.Printf("DeleteSinger: %d removed by admin", singerID)
	c.JSON(http.StatusOK, gin.H{"message": "Singer deleted"})
}

// ---------------- gates ----------------

// ToggleChartLock flips public visibility of one chart view.
func (ac *AdminController) ToggleChartLock(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	view, err := models.ParseView(c.Param("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ac.Settings.ToggleChartLock(view, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chart lock toggled", "view": view.Key()})
}

// ToggleVotingLock flips ballot acceptance for one evening.
func (ac *AdminController) ToggleVotingLock(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	evening, ok := intParam(c, "evening")
	if !ok {
		return
	}
	if err := ac.Settings.ToggleVotingLock(evening, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voting lock toggled", "evening": evening})
}

type visibilityRequest struct {
	Evening  int `json:"evening"`
	SingerID int `json:"singerId"`
}

// ToggleSingerVisibility flips a singer in or out of an evening's hidden set.
func (ac *AdminController) ToggleSingerVisibility(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed visibility request"})
		return
	}
	if err := ac.Settings.ToggleSingerVisibility(req.Evening, req.SingerID, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visibility toggled"})
}

// ---------------- vote management ----------------

type deleteVoteRequest struct {
	Username string `json:"username"`
	Evening  int    `json:"evening"`
}

// DeleteVote removes any operator's ballot for one evening from the console.
func (ac *AdminController) DeleteVote(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var req deleteVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing vote fields"})
		return
	}
	if err := ac.Contest.DeleteVote(req.Username, req.Evening, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info.Printf("DeleteVote: ballot of %s for evening %d removed by admin", req.Username, req.Evening)
	c.JSON(http.StatusOK, gin.H{"message": "Vote deleted"})
}

// ---------------- helpers ----------------

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return n, true
}

func singerStatus(err error) int {
	if errors.Is(err, services.ErrUnknownSinger) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
