package services

import (
	"testing"

	"stockforum/internal/models"
	"stockforum/internal/testutil"
)

func TestCreatePortfolioPost(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		post, err := svc.CreatePost(user.ID, "My holdings", "Mostly tech.", "https://i.example.com/abc.png")
		testutil.AssertNoError(t, err)

		if post.ID == 0 {
			t.Fatal("expected non-zero post ID")
		}
		if post.ImageURL != "https://i.example.com/abc.png" {
			t.Errorf("expected image URL kept, got %q", post.ImageURL)
		}
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePost(user.ID, "", "body", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeletePortfolioPost(t *testing.T) {
	t.Run("removes_post_and_votes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		votes := NewVoteService(db)
		user := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPortfolioPost(t, db, user.ID)

		ref := models.TargetRef{Type: models.TargetPortfolioPost, ID: post.ID}
		_, err := votes.Apply(ref, anonIdent("fp-1"), models.VoteUp)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeletePost(user.ID, post.ID))

		var voteCount int64
		db.Model(&models.Vote{}).Where("target_type = ? AND target_id = ?", models.TargetPortfolioPost, post.ID).Count(&voteCount)
		if voteCount != 0 {
			t.Errorf("expected vote rows removed with the post, got %d", voteCount)
		}
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPortfolioPost(t, db, user.ID)

		err := svc.DeletePost(other.ID, post.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
