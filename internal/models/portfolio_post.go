package models

// PortfolioPost is a shared portfolio write-up, optionally with an uploaded
// screenshot hosted externally.
type PortfolioPost struct {
	Base
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Title    string `gorm:"size:300;not null" json:"title"`
	Body     string `gorm:"type:text" json:"body,omitempty"`
	ImageURL string `gorm:"size:500" json:"image_url,omitempty"`

	VoteTotals
	CommentSummary
}
