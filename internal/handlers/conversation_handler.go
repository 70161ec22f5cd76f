package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/pagination"
	"stockforum/internal/services"
)

// ConversationHandler handles discussion post requests.
type ConversationHandler struct {
	conversationService services.ConversationServicer
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversationService services.ConversationServicer) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// CreateConversationRequest represents the request payload for a new post.
type CreateConversationRequest struct {
	Title string `json:"title" binding:"required,min=1,max=300"`
	Body  string `json:"body" binding:"required,min=1,max=20000"`
}

// CreateConversation handles the creation of a new discussion post
// @Summary     Create a conversation
// @Description Start a new general discussion post
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateConversationRequest true "Post details"
// @Success     201 {object} map[string]interface{} "Conversation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations [post]
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	conversation, err := h.conversationService.CreateConversation(userID, req.Title, req.Body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": conversation})
}

// ListConversations handles the retrieval of discussion posts
// @Summary     List conversations
// @Description Get a paginated list of discussion posts, newest first
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Conversation] "Paginated conversations"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.conversationService.ListConversations(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetConversationByID handles the retrieval of a single post
// @Summary     Get conversation by ID
// @Description Get one discussion post with vote totals and comment summary
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Param       id path int true "Conversation ID"
// @Success     200 {object} map[string]interface{} "Conversation details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Conversation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations/{id} [get]
func (h *ConversationHandler) GetConversationByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	conversation, err := h.conversationService.GetConversationByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// DeleteConversation handles the deletion of a post by its author
// @Summary     Delete conversation
// @Description Delete a discussion post. Only the author may delete it.
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Conversation ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Conversation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.conversationService.DeleteConversation(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
