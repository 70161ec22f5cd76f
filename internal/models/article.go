package models

// Article is editorial content written by staff users.
type Article struct {
	Base
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	User      *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Slug      string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Title     string `gorm:"size:300;not null" json:"title"`
	Body      string `gorm:"type:text;not null" json:"body"`
	Published bool   `gorm:"default:false;index" json:"published"`
}
