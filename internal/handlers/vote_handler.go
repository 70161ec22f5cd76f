package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/middleware"
	"stockforum/internal/models"
	"stockforum/internal/services"
)

// VoteHandler handles the vote ledger endpoints. Like comments, votes are
// open to anonymous callers through the identity resolver.
type VoteHandler struct {
	voteService services.VoteServicer
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteService services.VoteServicer) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVoteRequest represents the request payload for casting a vote.
type CastVoteRequest struct {
	Direction models.VoteDirection `json:"direction" binding:"required,vote_direction"`
}

// CastVote returns the handler that casts a vote on one collection's targets
// @Summary     Cast a vote
// @Description Cast a vote on a stock, conversation, portfolio post, or comment. One vote per caller per target; voting the opposite direction switches the vote.
// @Tags        votes
// @Accept      json
// @Produce     json
// @Param       id      path int             true "Target ID"
// @Param       request body CastVoteRequest true "Vote direction"
// @Success     200 {object} map[string]interface{} "Updated vote totals"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate vote"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /{collection}/{id}/votes [post]
func (h *VoteHandler) CastVote(target models.TargetType, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CallerIdentity(c)
		if !ok {
			respondWithError(c, apperrors.ErrInternalServer)
			return
		}

		id, err := parsePathID(c, idParam)
		if err != nil {
			respondWithError(c, err)
			return
		}

		var req CastVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}

		totals, err := h.voteService.Apply(models.TargetRef{Type: target, ID: id}, ident, req.Direction)
		if err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"votes": totals})
	}
}

// RemoveVote returns the handler that retracts the caller's vote from one
// collection's targets
// @Summary     Remove a vote
// @Description Retract the caller's existing vote from a target
// @Tags        votes
// @Accept      json
// @Produce     json
// @Param       id path int true "Target ID"
// @Success     200 {object} map[string]interface{} "Updated vote totals"
// @Failure     400 {object} ErrorResponse "No vote to remove"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /{collection}/{id}/votes [delete]
func (h *VoteHandler) RemoveVote(target models.TargetType, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CallerIdentity(c)
		if !ok {
			respondWithError(c, apperrors.ErrInternalServer)
			return
		}

		id, err := parsePathID(c, idParam)
		if err != nil {
			respondWithError(c, err)
			return
		}

		totals, err := h.voteService.Remove(models.TargetRef{Type: target, ID: id}, ident)
		if err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"votes": totals})
	}
}
