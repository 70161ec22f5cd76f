package models

// Conversation is a general discussion post not tied to a single stock.
type Conversation struct {
	Base
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Title  string `gorm:"size:300;not null" json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`

	VoteTotals
	CommentSummary
}
