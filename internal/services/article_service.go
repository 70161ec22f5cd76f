package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/models"
	"stockforum/internal/pagination"
)

// articleService handles editorial articles.
type articleService struct {
	db *gorm.DB
}

// NewArticleService creates a new ArticleServicer.
func NewArticleService(db *gorm.DB) ArticleServicer {
	return &articleService{db: db}
}

// CreateArticle persists a new article under a unique slug.
func (s *articleService) CreateArticle(userID uint, slug, title, body string, published bool) (*models.Article, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	title = strings.TrimSpace(title)
	if slug == "" || title == "" || strings.TrimSpace(body) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "slug, title and body are required")
	}

	var count int64
	s.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "an article with this slug already exists")
	}

	article := &models.Article{
		UserID:    userID,
		Slug:      slug,
		Title:     title,
		Body:      body,
		Published: published,
	}
	if err := s.db.Create(article).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return article, nil
}

// ListArticles retrieves published articles newest-first.
func (s *articleService) ListArticles(page pagination.PageRequest) (*pagination.PageResponse[models.Article], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Article{}).Where("published = ?", true)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var articles []models.Article
	err := base.Preload("User").Scopes(pagination.NewestFirst, pagination.Paginate(page)).
		Find(&articles).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(articles, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetArticleBySlug retrieves a published article by slug.
func (s *articleService) GetArticleBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := s.db.Preload("User").
		Where("slug = ? AND published = ?", strings.ToLower(strings.TrimSpace(slug)), true).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &article, nil
}
