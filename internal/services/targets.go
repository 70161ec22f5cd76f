package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/models"
)

// targetTable maps a target type to its table name for raw counter updates.
func targetTable(t models.TargetType) string {
	switch t {
	case models.TargetStock:
		return "stocks"
	case models.TargetConversation:
		return "conversations"
	case models.TargetPortfolioPost:
		return "portfolio_posts"
	case models.TargetComment:
		return "comments"
	}
	return ""
}

// targetNotFound returns the NotFound sentinel matching the target type.
func targetNotFound(t models.TargetType) *apperrors.AppError {
	switch t {
	case models.TargetStock:
		return apperrors.ErrStockNotFound
	case models.TargetConversation:
		return apperrors.ErrConversationNotFound
	case models.TargetPortfolioPost:
		return apperrors.ErrPortfolioPostNotFound
	case models.TargetComment:
		return apperrors.ErrCommentNotFound
	}
	return apperrors.ErrNotFound
}

// ensureTargetExists verifies the referenced target row exists.
func ensureTargetExists(tx *gorm.DB, ref models.TargetRef) error {
	var err error
	switch ref.Type {
	case models.TargetStock:
		err = tx.Select("id").First(&models.Stock{}, ref.ID).Error
	case models.TargetConversation:
		err = tx.Select("id").First(&models.Conversation{}, ref.ID).Error
	case models.TargetPortfolioPost:
		err = tx.Select("id").First(&models.PortfolioPost{}, ref.ID).Error
	case models.TargetComment:
		err = tx.Select("id").First(&models.Comment{}, ref.ID).Error
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown target type %q", ref.Type))
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return targetNotFound(ref.Type)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// voteColumn maps a vote direction to its counter column.
func voteColumn(d models.VoteDirection) string {
	if d == models.VoteUp {
		return "upvotes"
	}
	return "downvotes"
}

// adjustVoteCounter applies an atomic increment or clamped decrement to a
// target's vote counter. Decrements never take the counter below zero, which
// keeps a desynchronized counter from going negative.
func adjustVoteCounter(tx *gorm.DB, ref models.TargetRef, d models.VoteDirection, delta int) error {
	col := voteColumn(d)
	var expr interface{}
	if delta > 0 {
		expr = gorm.Expr(col + " + 1")
	} else {
		expr = gorm.Expr(fmt.Sprintf("CASE WHEN %s > 0 THEN %s - 1 ELSE 0 END", col, col))
	}

	err := tx.Table(targetTable(ref.Type)).Where("id = ?", ref.ID).UpdateColumn(col, expr).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// loadVoteTotals reads the current counters from the target row.
func loadVoteTotals(tx *gorm.DB, ref models.TargetRef) (*models.VoteTotals, error) {
	var totals models.VoteTotals
	err := tx.Table(targetTable(ref.Type)).
		Select("upvotes, downvotes").
		Where("id = ?", ref.ID).
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &totals, nil
}
