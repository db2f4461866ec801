// Package controllers handles ballot submission and revoting.
// File: controllers/vote_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-holo-council/logger"
	"go-holo-council/services"
	"go-holo-council/websocket"
)

// VoteController accepts ballots, stateless token adjustments, and
// code-gated revote unlocks.
type VoteController struct {
	Contest  *services.ContestService
	Progress *services.ProgressService
	Ballots  *services.BallotService
}

// NewVoteController initializes a new instance of VoteController.
func NewVoteController(contest *services.ContestService, progress *services.ProgressService) *VoteController {
	return &VoteController{
		Contest:  contest,
		Progress: progress,
		Ballots:  services.NewBallotService(),
	}
}

type ballotRequest struct {
	Evening int            `json:"evening"`
	Tokens  map[int]int    `json:"tokens"`
	Ratings map[int]string `json:"ratings"`
}

// SubmitBallot commits the caller's ballot for one evening.
func (vc *VoteController) SubmitBallot(c *gin.Context) {
	username, isAdmin := sessionIdentity(c)

	var req ballotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed ballot"})
		return
	}
	if !validEvening(req.Evening) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown evening"})
		return
	}

	started := time.Now()
	if err := vc.Contest.ConfirmBallot(username, req.Evening, req.Tokens, req.Ratings, isAdmin); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": err.Error()})
		return
	}
	websocket.PublishBallotLatency(float64(time.Since(started).Milliseconds()))

	c.JSON(http.StatusOK, gin.H{"message": "Ballot registered", "evening": req.Evening})
}

type adjustRequest struct {
	Tokens   map[int]int `json:"tokens"`
	SingerID int         `json:"singerId"`
	Delta    int         `json:"delta"`
}

// AdjustTokens validates one +1/-1 step of a working token allocation and
// returns the updated allocation. The working ballot lives on the client;
// this endpoint only enforces the budget and per-singer cap.
func (vc *VoteController) AdjustTokens(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed adjustment"})
		return
	}
	if req.Tokens == nil {
		req.Tokens = map[int]int{}
	}

	if err := vc.Ballots.AdjustTokens(req.Tokens, req.SingerID, req.Delta); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": err.Error(), "tokens": req.Tokens})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": req.Tokens})
}

type unlockRequest struct {
	Evening int    `json:"evening"`
	Code    string `json:"code"`
}

// UnlockBallot re-opens the caller's own finalized ballot for one evening,
// gated by the evening's unlock code. The prior vote is deleted; exactly
// one new ballot may then be submitted.
func (vc *VoteController) UnlockBallot(c *gin.Context) {
	username, _ := sessionIdentity(c)

	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed unlock request"})
		return
	}
	if !validEvening(req.Evening) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown evening"})
		return
	}

	if err := vc.Progress.UnlockBallot(username, req.Evening, req.Code); err != nil {
		c.JSON(rejectionStatus(err), gin.H{"error": err.Error()})
		return
	}
	logger.Info.Printf("UnlockBallot: %s re-opened evening %d", username, req.Evening)
	c.JSON(http.StatusOK, gin.H{"message": "Ballot unlocked", "evening": req.Evening})
}

// VotingStatus reports whether the caller may still vote on an evening.
func (vc *VoteController) VotingStatus(c *gin.Context) {
	username, isAdmin := sessionIdentity(c)
	doc := vc.Contest.Snapshot()

	status := make([]gin.H, 0, len(doc.LockedVoting))
	for _, evening := range []int{1, 2, 3, 4, 5} {
		status = append(status, gin.H{
			"evening":  evening,
			"locked":   doc.LockedVoting[evening] && !isAdmin,
			"hasVoted": doc.VotersProgress[username][evening],
		})
	}
	c.JSON(http.StatusOK, gin.H{"evenings": status})
}

// rejectionStatus maps ballot rejections to HTTP statuses. Everything here
// is a recoverable local rejection, never a server fault.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, services.ErrVotingLocked):
		return http.StatusLocked
	case errors.Is(err, services.ErrBadUnlockCode):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmptyBallot),
		errors.Is(err, services.ErrNoValidRatings),
		errors.Is(err, services.ErrTokenOutOfRange),
		errors.Is(err, services.ErrTokenBudgetExceeded):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func validEvening(evening int) bool {
	return evening >= 1 && evening <= 5
}
