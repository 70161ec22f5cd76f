package models

import "time"

// Base contains common columns for all tables.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteTotals holds the denormalized vote counters embedded on every votable
// entity. Counters are mutated only by the vote ledger through clamped SQL
// expressions, never by direct field writes.
type VoteTotals struct {
	Upvotes   int `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int `gorm:"not null;default:0" json:"downvotes"`
}

// CommentSummary holds the denormalized comment aggregate embedded on each
// commentable entity: the live comment count and a snapshot of the most
// recent comment. Mutated only by the aggregate updater inside the comment
// service's transactions.
type CommentSummary struct {
	CommentCount       int        `gorm:"not null;default:0" json:"comment_count"`
	LastCommentID      *uint      `json:"last_comment_id,omitempty"`
	LastCommentExcerpt string     `gorm:"size:200" json:"last_comment_excerpt,omitempty"`
	LastCommentAuthor  string     `gorm:"size:100" json:"last_comment_author,omitempty"`
	LastCommentUserID  *uint      `json:"last_comment_user_id,omitempty"`
	LastCommentAt      *time.Time `json:"last_comment_at,omitempty"`
}
