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

// conversationService handles general discussion posts.
type conversationService struct {
	db *gorm.DB
}

// NewConversationService creates a new ConversationServicer.
func NewConversationService(db *gorm.DB) ConversationServicer {
	return &conversationService{db: db}
}

// CreateConversation persists a new discussion post.
func (s *conversationService) CreateConversation(userID uint, title, body string) (*models.Conversation, error) {
	title = strings.TrimSpace(title)
	body = sanitize.Text(body)
	if title == "" || body == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and body are required")
	}

	conversation := &models.Conversation{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := s.db.Create(conversation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return conversation, nil
}

// ListConversations retrieves discussion posts newest-first.
func (s *conversationService) ListConversations(page pagination.PageRequest) (*pagination.PageResponse[models.Conversation], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Conversation{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var conversations []models.Conversation
	err := base.Preload("User").Scopes(pagination.NewestFirst, pagination.Paginate(page)).
		Find(&conversations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(conversations, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetConversationByID retrieves one discussion post.
func (s *conversationService) GetConversationByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.Preload("User").First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &conversation, nil
}

// DeleteConversation removes a post. Only the author may delete it.
func (s *conversationService) DeleteConversation(userID, id uint) error {
	conversation, err := s.GetConversationByID(id)
	if err != nil {
		return err
	}
	if conversation.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(conversation).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
