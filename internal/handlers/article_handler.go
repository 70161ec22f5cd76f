package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/pagination"
	"stockforum/internal/services"
)

// ArticleHandler handles editorial article requests.
type ArticleHandler struct {
	articleService services.ArticleServicer
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService services.ArticleServicer) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// CreateArticleRequest represents the request payload for a new article.
type CreateArticleRequest struct {
	Slug      string `json:"slug" binding:"required,article_slug,max=200"`
	Title     string `json:"title" binding:"required,min=1,max=300"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

// CreateArticle handles the creation of a new article
// @Summary     Create an article
// @Description Publish an editorial article under a unique slug
// @Tags        articles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateArticleRequest true "Article details"
// @Success     201 {object} map[string]interface{} "Article created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate slug"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	article, err := h.articleService.CreateArticle(userID, req.Slug, req.Title, req.Body, req.Published)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// ListArticles handles the retrieval of published articles
// @Summary     List articles
// @Description Get a paginated list of published articles, newest first
// @Tags        articles
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Article] "Paginated articles"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.articleService.ListArticles(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetArticleBySlug handles the retrieval of a single article
// @Summary     Get article by slug
// @Description Get one published article by its slug
// @Tags        articles
// @Accept      json
// @Produce     json
// @Param       slug path string true "Article slug"
// @Success     200 {object} map[string]interface{} "Article details"
// @Failure     404 {object} ErrorResponse "Article not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /articles/{slug} [get]
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetArticleBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}
