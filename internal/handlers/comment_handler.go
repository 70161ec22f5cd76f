package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/middleware"
	"stockforum/internal/models"
	"stockforum/internal/services"
)

// CommentHandler handles threaded comment requests. All routes run behind
// the identity resolver so anonymous callers are served the same way as
// authenticated ones.
type CommentHandler struct {
	commentService services.CommentServicer
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService services.CommentServicer) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the request payload for a new comment.
type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,min=1,max=10000"`
	ParentCommentID *uint  `json:"parent_comment_id"`
	Anonymous       bool   `json:"anonymous"`
}

// UpdateCommentRequest represents the request payload for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

// CreateComment returns the handler that posts a comment or reply on one
// collection's targets. The collection's target type and ID param name are
// fixed at route registration.
// @Summary     Post a comment
// @Description Post a comment or a reply on a stock, conversation, or portfolio post. Anonymous callers may post; authenticated callers may opt into anonymity.
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       id      path int                  true "Target ID"
// @Param       request body CreateCommentRequest true "Comment details"
// @Success     201 {object} map[string]interface{} "Comment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Target or parent comment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /{collection}/{id}/comments [post]
func (h *CommentHandler) CreateComment(target models.TargetType, idParam string) gin.HandlerFunc {
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

		var req CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}

		comment, err := h.commentService.Create(ident, services.CommentCreateInput{
			Target:          models.TargetRef{Type: target, ID: id},
			Content:         req.Content,
			ParentCommentID: req.ParentCommentID,
			Anonymous:       req.Anonymous,
		})
		if err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"comment": comment})
	}
}

// ListComments returns the handler that serves one collection's comment
// threads
// @Summary     List comments
// @Description Get the full comment thread for a target: top-level comments newest first, replies oldest first
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       id path int true "Target ID"
// @Success     200 {object} map[string]interface{} "Comment thread"
// @Failure     400 {object} ErrorResponse "Invalid target"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /{collection}/{id}/comments [get]
func (h *CommentHandler) ListComments(target models.TargetType, idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parsePathID(c, idParam)
		if err != nil {
			respondWithError(c, err)
			return
		}

		comments, err := h.commentService.List(models.TargetRef{Type: target, ID: id})
		if err != nil {
			respondWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// UpdateComment handles editing a comment by its author
// @Summary     Edit a comment
// @Description Rewrite a comment's content. Anonymous comments cannot be edited.
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Comment ID"
// @Param       request body UpdateCommentRequest true "New content"
// @Success     200 {object} map[string]interface{} "Updated comment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Comment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	ident, ok := middleware.CallerIdentity(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	commentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	comment, err := h.commentService.Update(commentID, ident, req.Content)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles deleting a comment by its author
// @Summary     Delete a comment
// @Description Delete a comment. Anonymous comments cannot be deleted. Replies to the deleted comment disappear from future listings.
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Comment ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Comment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	ident, ok := middleware.CallerIdentity(c)
	if !ok {
		respondWithError(c, apperrors.ErrInternalServer)
		return
	}

	commentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.commentService.Delete(commentID, ident); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
