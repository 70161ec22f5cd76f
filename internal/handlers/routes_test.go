package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"stockforum/internal/identity"
)

// setupForumRouter mirrors the server's route table: the static lookup
// routes for each collection plus the shared comment and vote routes. The
// static routes are stubs; the test cares about route resolution, not
// handler behavior.
func setupForumRouter() *gin.Engine {
	r := gin.New()
	okStub := func(c *gin.Context) { c.Status(http.StatusOK) }

	v1 := r.Group("/api/v1")
	v1.GET("/stocks", okStub)
	v1.GET("/stocks/:symbol", okStub)
	v1.GET("/conversations", okStub)
	v1.GET("/conversations/:id", okStub)
	v1.GET("/portfolio/posts", okStub)
	v1.GET("/portfolio/posts/:id", okStub)
	v1.GET("/articles", okStub)
	v1.GET("/articles/:slug", okStub)

	open := v1.Group("/")
	open.Use(injectIdentity(identity.Identity{Kind: identity.KindUser, UserID: 1}))
	RegisterContentRoutes(open, NewCommentHandler(&mockCommentService{}), NewVoteHandler(&mockVoteService{}))

	protected := v1.Group("/")
	protected.POST("/stocks", okStub)
	protected.PATCH("/stocks/:symbol", okStub)
	protected.POST("/conversations", okStub)
	protected.DELETE("/conversations/:id", okStub)
	protected.POST("/portfolio/posts", okStub)
	protected.DELETE("/portfolio/posts/:id", okStub)
	protected.POST("/articles", okStub)

	return r
}

// Every comment and vote route must resolve for every collection even
// though the collections also carry static lookup routes on the same path
// prefixes.
func TestContentRouteTable(t *testing.T) {
	r := setupForumRouter()

	commentBody := `{"content":"hello"}`
	voteBody := `{"direction":"up"}`

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"GET", "/api/v1/stocks/5/comments", "", http.StatusOK},
		{"POST", "/api/v1/stocks/5/comments", commentBody, http.StatusCreated},
		{"POST", "/api/v1/stocks/5/votes", voteBody, http.StatusOK},
		{"DELETE", "/api/v1/stocks/5/votes", "", http.StatusOK},
		{"GET", "/api/v1/conversations/7/comments", "", http.StatusOK},
		{"POST", "/api/v1/conversations/7/comments", commentBody, http.StatusCreated},
		{"POST", "/api/v1/conversations/7/votes", voteBody, http.StatusOK},
		{"DELETE", "/api/v1/conversations/7/votes", "", http.StatusOK},
		{"GET", "/api/v1/portfolio-posts/3/comments", "", http.StatusOK},
		{"POST", "/api/v1/portfolio-posts/3/comments", commentBody, http.StatusCreated},
		{"POST", "/api/v1/portfolio-posts/3/votes", voteBody, http.StatusOK},
		{"DELETE", "/api/v1/portfolio-posts/3/votes", "", http.StatusOK},
		{"POST", "/api/v1/comments/9/votes", voteBody, http.StatusOK},
		{"DELETE", "/api/v1/comments/9/votes", "", http.StatusOK},
		{"PUT", "/api/v1/comments/9", commentBody, http.StatusOK},
		{"DELETE", "/api/v1/comments/9", "", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doRequest(r, tc.method, tc.path, tc.body)
			if rec.Code == http.StatusNotFound {
				t.Fatalf("route not resolved: got 404")
			}
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}

	// The static lookup routes must still resolve next to the shared routes.
	for _, path := range []string{"/api/v1/stocks/ACME", "/api/v1/conversations/7", "/api/v1/portfolio/posts/3", "/api/v1/articles/outlook"} {
		t.Run("GET "+path, func(t *testing.T) {
			rec := doRequest(r, "GET", path, "")
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
		})
	}
}
