package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/identity"
	"stockforum/internal/models"
	"stockforum/internal/sanitize"
)

// commentService is the flat comment store plus the tree builder that
// reconstitutes the two-level thread view per request.
type commentService struct {
	db        *gorm.DB
	aggregate aggregateUpdater
}

// NewCommentService creates a new CommentServicer.
func NewCommentService(db *gorm.DB) CommentServicer {
	return &commentService{db: db}
}

// Create validates and persists a comment, updating the parent target's
// comment summary in the same transaction. The author is recorded as null
// whenever the caller is anonymous or explicitly requests anonymity.
func (s *commentService) Create(ident identity.Identity, in CommentCreateInput) (*models.Comment, error) {
	content := sanitize.Text(in.Content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "comment content is required")
	}
	if !in.Target.Type.Commentable() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "comments cannot attach to this target")
	}

	comment := &models.Comment{
		Content:   content,
		Anonymous: !ident.Authenticated() || in.Anonymous,
	}
	if ident.Authenticated() && !in.Anonymous {
		userID := ident.UserID
		comment.UserID = &userID
	}

	switch in.Target.Type {
	case models.TargetStock:
		comment.StockID = &in.Target.ID
	case models.TargetConversation:
		comment.ConversationID = &in.Target.ID
	case models.TargetPortfolioPost:
		comment.PortfolioPostID = &in.Target.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureTargetExists(tx, in.Target); err != nil {
			return err
		}

		if in.ParentCommentID != nil {
			var parent models.Comment
			err := commentsForTarget(tx, in.Target).Where("id = ?", *in.ParentCommentID).First(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrParentCommentNotFound
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			comment.ParentCommentID = in.ParentCommentID
			comment.IsReply = true
		}

		if err := tx.Create(comment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if comment.UserID != nil {
			var author models.User
			if err := tx.First(&author, *comment.UserID).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			comment.User = &author
		}

		return s.aggregate.commentCreated(tx, in.Target, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// List fetches the flat comment set for a target and builds the thread
// view: top-level comments newest-first, replies oldest-first. Replies
// whose parent no longer exists are dropped from the view; they stay in
// storage but are never promoted to top level.
func (s *commentService) List(ref models.TargetRef) ([]*CommentNode, error) {
	if !ref.Type.Commentable() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "comments cannot attach to this target")
	}
	if err := ensureTargetExists(s.db, ref); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := commentsForTarget(s.db, ref).Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return buildTree(comments), nil
}

// Update rewrites a comment's content. Anonymous comments and comments
// owned by someone else cannot be edited.
func (s *commentService) Update(commentID uint, ident identity.Identity, content string) (*models.Comment, error) {
	content = sanitize.Text(content)
	if content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "comment content is required")
	}

	var updated *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		comment, err := s.authorizedComment(tx, commentID, ident)
		if err != nil {
			return err
		}
		ref, err := commentTarget(comment)
		if err != nil {
			return err
		}

		if err := tx.Model(comment).Update("content", content).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		comment.Content = content
		updated = comment

		// Keep the target's last-comment excerpt in step with the edit.
		return s.aggregate.commentEdited(tx, ref, comment)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a comment and settles the parent target's comment summary.
// Replies are not cascaded; they become invisible in future listings.
func (s *commentService) Delete(commentID uint, ident identity.Identity) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		comment, err := s.authorizedComment(tx, commentID, ident)
		if err != nil {
			return err
		}
		ref, err := commentTarget(comment)
		if err != nil {
			return err
		}

		if err := tx.Delete(comment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Drop the comment's own vote rows so the membership sets do not
		// outlive the target.
		err = tx.Where("target_type = ? AND target_id = ?", models.TargetComment, comment.ID).
			Delete(&models.Vote{}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.aggregate.commentDeleted(tx, ref, comment)
	})
}

// authorizedComment loads a comment and verifies the identity owns it.
func (s *commentService) authorizedComment(tx *gorm.DB, commentID uint, ident identity.Identity) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if comment.Anonymous || comment.UserID == nil {
		return nil, apperrors.ErrForbidden
	}
	if !ident.Authenticated() || *comment.UserID != ident.UserID {
		return nil, apperrors.ErrForbidden
	}
	return &comment, nil
}

// commentsForTarget scopes the comments table to one parent target.
func commentsForTarget(tx *gorm.DB, ref models.TargetRef) *gorm.DB {
	q := tx.Model(&models.Comment{})
	switch ref.Type {
	case models.TargetStock:
		return q.Where("stock_id = ?", ref.ID)
	case models.TargetConversation:
		return q.Where("conversation_id = ?", ref.ID)
	case models.TargetPortfolioPost:
		return q.Where("portfolio_post_id = ?", ref.ID)
	}
	return q.Where("1 = 0")
}

// commentTarget derives the parent target reference from a comment's
// foreign keys. Exactly one must be set.
func commentTarget(c *models.Comment) (models.TargetRef, error) {
	switch {
	case c.StockID != nil:
		return models.TargetRef{Type: models.TargetStock, ID: *c.StockID}, nil
	case c.ConversationID != nil:
		return models.TargetRef{Type: models.TargetConversation, ID: *c.ConversationID}, nil
	case c.PortfolioPostID != nil:
		return models.TargetRef{Type: models.TargetPortfolioPost, ID: *c.PortfolioPostID}, nil
	}
	return models.TargetRef{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "comment has no parent target")
}

// buildTree indexes the flat, chronologically ordered comment set and
// attaches replies to their parents. The input ordering makes reply lists
// oldest-first; the top-level slice is reversed for newest-first output.
func buildTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	order := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
	}

	for i := range comments {
		node := nodes[comments[i].ID]
		if pid := comments[i].ParentCommentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Replies = append(parent.Replies, node)
			}
			// Orphaned replies are dropped from the view, never promoted.
			continue
		}
		order = append(order, node)
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
