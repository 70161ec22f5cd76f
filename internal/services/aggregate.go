package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/models"
)

// excerptLimit bounds the last-comment excerpt stored on parent targets.
const excerptLimit = 200

// aggregateUpdater maintains the denormalized comment summary on parent
// targets: the live comment count and the last-comment snapshot. It never
// touches reply structure, and it only runs inside the comment service's
// transactions.
type aggregateUpdater struct{}

// commentCreated bumps the parent's comment count and overwrites the
// last-comment snapshot.
func (aggregateUpdater) commentCreated(tx *gorm.DB, ref models.TargetRef, c *models.Comment) error {
	err := tx.Table(targetTable(ref.Type)).Where("id = ?", ref.ID).UpdateColumns(map[string]interface{}{
		"comment_count":        gorm.Expr("comment_count + 1"),
		"last_comment_id":      c.ID,
		"last_comment_excerpt": excerpt(c.Content),
		"last_comment_author":  c.AuthorLabel(),
		"last_comment_user_id": snapshotAuthorID(c),
		"last_comment_at":      c.CreatedAt,
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// commentEdited refreshes the excerpt when the edited comment is the
// current snapshot. Other summary fields are untouched; an edit does not
// change authorship or recency.
func (aggregateUpdater) commentEdited(tx *gorm.DB, ref models.TargetRef, c *models.Comment) error {
	err := tx.Table(targetTable(ref.Type)).
		Where("id = ? AND last_comment_id = ?", ref.ID, c.ID).
		UpdateColumn("last_comment_excerpt", excerpt(c.Content)).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// commentDeleted decrements the parent's comment count (floored at zero).
// If the deleted comment was the current snapshot, the most recent surviving
// comment is promoted into the slot, or the slot is cleared when none remain.
func (a aggregateUpdater) commentDeleted(tx *gorm.DB, ref models.TargetRef, deleted *models.Comment) error {
	table := targetTable(ref.Type)
	err := tx.Table(table).Where("id = ?", ref.ID).
		UpdateColumn("comment_count", gorm.Expr("CASE WHEN comment_count > 0 THEN comment_count - 1 ELSE 0 END")).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var current struct {
		LastCommentID *uint
	}
	err = tx.Table(table).Select("last_comment_id").Where("id = ?", ref.ID).Scan(&current).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if current.LastCommentID == nil || *current.LastCommentID != deleted.ID {
		return nil
	}

	var survivor models.Comment
	err = commentsForTarget(tx, ref).Preload("User").
		Order("created_at DESC, id DESC").
		First(&survivor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a.clearSnapshot(tx, ref)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = tx.Table(table).Where("id = ?", ref.ID).UpdateColumns(map[string]interface{}{
		"last_comment_id":      survivor.ID,
		"last_comment_excerpt": excerpt(survivor.Content),
		"last_comment_author":  survivor.AuthorLabel(),
		"last_comment_user_id": snapshotAuthorID(&survivor),
		"last_comment_at":      survivor.CreatedAt,
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (aggregateUpdater) clearSnapshot(tx *gorm.DB, ref models.TargetRef) error {
	err := tx.Table(targetTable(ref.Type)).Where("id = ?", ref.ID).UpdateColumns(map[string]interface{}{
		"last_comment_id":      nil,
		"last_comment_excerpt": "",
		"last_comment_author":  "",
		"last_comment_user_id": nil,
		"last_comment_at":      nil,
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// excerpt truncates content for the snapshot. Content within the limit is
// stored verbatim; longer content is cut to 197 characters plus an ellipsis.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit-3]) + "..."
}

// snapshotAuthorID returns the author recorded in the snapshot: nil for
// anonymous comments.
func snapshotAuthorID(c *models.Comment) *uint {
	if c.Anonymous {
		return nil
	}
	return c.UserID
}
