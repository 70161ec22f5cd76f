package handlers

import (
	"github.com/gin-gonic/gin"

	"stockforum/internal/models"
)

// RegisterContentRoutes wires the comment and vote routes for every content
// collection. Each collection gets explicit routes so they coexist with the
// static lookup routes on the same paths; gin allows only one param name
// per path position, which is why the stock routes reuse :symbol even
// though the value carried there is the numeric stock ID.
func RegisterContentRoutes(r gin.IRoutes, comments *CommentHandler, votes *VoteHandler) {
	collections := []struct {
		segment     string
		idParam     string
		target      models.TargetType
		commentable bool
	}{
		{"stocks", "symbol", models.TargetStock, true},
		{"conversations", "id", models.TargetConversation, true},
		{"portfolio-posts", "id", models.TargetPortfolioPost, true},
		{"comments", "id", models.TargetComment, false},
	}

	for _, col := range collections {
		base := "/" + col.segment + "/:" + col.idParam
		if col.commentable {
			r.GET(base+"/comments", comments.ListComments(col.target, col.idParam))
			r.POST(base+"/comments", comments.CreateComment(col.target, col.idParam))
		}
		r.POST(base+"/votes", votes.CastVote(col.target, col.idParam))
		r.DELETE(base+"/votes", votes.RemoveVote(col.target, col.idParam))
	}

	r.PUT("/comments/:id", comments.UpdateComment)
	r.DELETE("/comments/:id", comments.DeleteComment)
}
