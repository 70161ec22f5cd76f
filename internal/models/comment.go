package models

// Comment is a flat-stored comment attached to exactly one content target.
// UserID is null for anonymous comments; Anonymous is also raised when an
// authenticated caller asks to post anonymously. ParentCommentID is null for
// top-level comments. Replies to a deleted parent stay in storage but are
// dropped from tree views.
type Comment struct {
	Base
	Content   string `gorm:"type:text;not null" json:"content"`
	UserID    *uint  `gorm:"index" json:"user_id,omitempty"`
	User      *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	Anonymous bool   `gorm:"not null;default:false" json:"anonymous"`

	StockID         *uint `gorm:"index" json:"stock_id,omitempty"`
	ConversationID  *uint `gorm:"index" json:"conversation_id,omitempty"`
	PortfolioPostID *uint `gorm:"index" json:"portfolio_post_id,omitempty"`

	ParentCommentID *uint `gorm:"index" json:"parent_comment_id,omitempty"`
	IsReply         bool  `gorm:"not null;default:false" json:"is_reply"`

	VoteTotals
}

// AuthorLabel returns the display name recorded in aggregate snapshots.
func (c *Comment) AuthorLabel() string {
	if c.Anonymous || c.User == nil {
		return "Anonymous"
	}
	return c.User.Username
}
