package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/pagination"
	"stockforum/internal/services"
)

// PortfolioHandler handles portfolio post requests, including screenshot
// uploads.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	imageService     services.ImageServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, imageService services.ImageServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, imageService: imageService}
}

// CreatePortfolioPostRequest represents the request payload for a new post.
type CreatePortfolioPostRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=300"`
	Body     string `json:"body" binding:"max=20000"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
}

// CreatePost handles the creation of a new portfolio post
// @Summary     Create a portfolio post
// @Description Share a portfolio, optionally with a previously uploaded screenshot URL
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePortfolioPostRequest true "Post details"
// @Success     201 {object} map[string]interface{} "Post created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/posts [post]
func (h *PortfolioHandler) CreatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePortfolioPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	post, err := h.portfolioService.CreatePost(userID, req.Title, req.Body, req.ImageURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// ListPosts handles the retrieval of portfolio posts
// @Summary     List portfolio posts
// @Description Get a paginated list of portfolio posts, newest first
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PortfolioPost] "Paginated posts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/posts [get]
func (h *PortfolioHandler) ListPosts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.portfolioService.ListPosts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPostByID handles the retrieval of a single portfolio post
// @Summary     Get portfolio post by ID
// @Description Get one portfolio post with vote totals and comment summary
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Param       id path int true "Post ID"
// @Success     200 {object} map[string]interface{} "Post details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/posts/{id} [get]
func (h *PortfolioHandler) GetPostByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	post, err := h.portfolioService.GetPostByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles the deletion of a post by its author
// @Summary     Delete portfolio post
// @Description Delete a portfolio post. Only the author may delete it.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Post ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/posts/{id} [delete]
func (h *PortfolioHandler) DeletePost(c *gin.Context) {
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

	if err := h.portfolioService.DeletePost(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage handles portfolio screenshot uploads
// @Summary     Upload a screenshot
// @Description Upload a portfolio screenshot to the image host and get back its URL
// @Tags        portfolio
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       image formData file true "Image file (max 10MB)"
// @Success     201 {object} map[string]interface{} "Hosted image URL"
// @Failure     400 {object} ErrorResponse "Invalid upload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Image host rejected the upload"
// @Router      /portfolio/uploads [post]
func (h *PortfolioHandler) UploadImage(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "image file is required"))
		return
	}
	defer file.Close()

	result, err := h.imageService.Upload(file, header)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": result})
}
