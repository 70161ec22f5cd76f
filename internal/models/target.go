package models

// TargetType names the kind of content entity a comment or vote attaches to.
type TargetType string

const (
	TargetStock         TargetType = "stock"
	TargetConversation  TargetType = "conversation"
	TargetPortfolioPost TargetType = "portfolio_post"
	TargetComment       TargetType = "comment"
)

// TargetRef identifies a single content target.
type TargetRef struct {
	Type TargetType
	ID   uint
}

// Commentable reports whether comments may attach to this target type.
// Comments attach to content entities, not to other comments; replies use
// ParentCommentID instead.
func (t TargetType) Commentable() bool {
	switch t {
	case TargetStock, TargetConversation, TargetPortfolioPost:
		return true
	}
	return false
}

// Votable reports whether votes may attach to this target type.
func (t TargetType) Votable() bool {
	return t.Commentable() || t == TargetComment
}
