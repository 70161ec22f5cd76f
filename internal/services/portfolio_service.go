package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/models"
	"stockforum/internal/pagination"
	"stockforum/internal/sanitize"
)

// portfolioService handles shared portfolio posts.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePost persists a portfolio post. The image URL, if present, points at
// an already-uploaded screenshot; the post itself is agnostic to how the
// image got there.
func (s *portfolioService) CreatePost(userID uint, title, body, imageURL string) (*models.PortfolioPost, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	post := &models.PortfolioPost{
		UserID:   userID,
		Title:    title,
		Body:     sanitize.Text(body),
		ImageURL: strings.TrimSpace(imageURL),
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return post, nil
}

// ListPosts retrieves portfolio posts newest-first.
func (s *portfolioService) ListPosts(page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioPost], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.PortfolioPost{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var posts []models.PortfolioPost
	err := base.Preload("User").Scopes(pagination.NewestFirst, pagination.Paginate(page)).
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(posts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPostByID retrieves one portfolio post.
func (s *portfolioService) GetPostByID(id uint) (*models.PortfolioPost, error) {
	var post models.PortfolioPost
	if err := s.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioPostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &post, nil
}

// DeletePost removes a post. Only the author may delete it. The post's vote
// rows are removed alongside so the membership sets do not outlive it.
func (s *portfolioService) DeletePost(userID, id uint) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(post).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		err := tx.Where("target_type = ? AND target_id = ?", models.TargetPortfolioPost, post.ID).
			Delete(&models.Vote{}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
