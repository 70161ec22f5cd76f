package services

import (
	"strings"
	"testing"
	"time"

	"stockforum/internal/identity"
	"stockforum/internal/models"
	"stockforum/internal/testutil"
)

func TestCreateComment(t *testing.T) {
	t.Run("authenticated_author", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		comment, err := svc.Create(userIdent(user.ID), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "Solid earnings this quarter.",
		})
		testutil.AssertNoError(t, err)

		if comment.ID == 0 {
			t.Fatal("expected non-zero comment ID")
		}
		if comment.Anonymous {
			t.Error("expected comment to carry its author")
		}
		if comment.UserID == nil || *comment.UserID != user.ID {
			t.Errorf("expected author %d, got %v", user.ID, comment.UserID)
		}
		if comment.IsReply {
			t.Error("expected top-level comment")
		}
	})

	t.Run("anonymous_caller", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)

		comment, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "First!",
		})
		testutil.AssertNoError(t, err)

		if !comment.Anonymous {
			t.Error("expected anonymous comment")
		}
		if comment.UserID != nil {
			t.Errorf("expected nil author, got %v", *comment.UserID)
		}
	})

	t.Run("authenticated_opts_into_anonymity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		comment, err := svc.Create(userIdent(user.ID), CommentCreateInput{
			Target:    stockRef(stock.ID),
			Content:   "Not putting my name on this one.",
			Anonymous: true,
		})
		testutil.AssertNoError(t, err)

		if !comment.Anonymous || comment.UserID != nil {
			t.Error("expected opted-in anonymity to drop the author")
		}
	})

	t.Run("empty_content", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)

		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "   ",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("markup_is_stripped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)

		comment, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "<script>alert(1)</script>buy the dip",
		})
		testutil.AssertNoError(t, err)

		if strings.Contains(comment.Content, "<script>") {
			t.Errorf("expected markup stripped, got %q", comment.Content)
		}
	})

	t.Run("target_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)

		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  models.TargetRef{Type: models.TargetConversation, ID: 404},
			Content: "hello?",
		})
		testutil.AssertAppError(t, err, "CONVERSATION_NOT_FOUND")
	})

	t.Run("comments_on_comments_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := testutil.CreateTestComment(t, db, user.ID, stock.ID)

		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  models.TargetRef{Type: models.TargetComment, ID: comment.ID},
			Content: "replying wrong",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("reply_to_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		parent := testutil.CreateTestComment(t, db, user.ID, stock.ID)

		reply, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:          stockRef(stock.ID),
			Content:         "Agreed.",
			ParentCommentID: &parent.ID,
		})
		testutil.AssertNoError(t, err)

		if !reply.IsReply {
			t.Error("expected reply flag")
		}
		if reply.ParentCommentID == nil || *reply.ParentCommentID != parent.ID {
			t.Errorf("expected parent %d, got %v", parent.ID, reply.ParentCommentID)
		}
	})

	t.Run("parent_under_other_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock1 := testutil.CreateTestStock(t, db)
		stock2 := testutil.CreateTestStock(t, db)
		parent := testutil.CreateTestComment(t, db, user.ID, stock1.ID)

		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:          stockRef(stock2.ID),
			Content:         "wrong thread",
			ParentCommentID: &parent.ID,
		})
		testutil.AssertAppError(t, err, "PARENT_COMMENT_NOT_FOUND")
	})

	t.Run("updates_comment_summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		comment, err := svc.Create(userIdent(user.ID), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "Watching closely.",
		})
		testutil.AssertNoError(t, err)

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.CommentCount != 1 {
			t.Errorf("expected comment_count 1, got %d", fresh.CommentCount)
		}
		if fresh.LastCommentID == nil || *fresh.LastCommentID != comment.ID {
			t.Errorf("expected snapshot of comment %d, got %v", comment.ID, fresh.LastCommentID)
		}
		if fresh.LastCommentExcerpt != "Watching closely." {
			t.Errorf("expected verbatim excerpt, got %q", fresh.LastCommentExcerpt)
		}
		if fresh.LastCommentAuthor != user.Username {
			t.Errorf("expected author %q, got %q", user.Username, fresh.LastCommentAuthor)
		}
		if fresh.LastCommentUserID == nil || *fresh.LastCommentUserID != user.ID {
			t.Errorf("expected snapshot author ID %d, got %v", user.ID, fresh.LastCommentUserID)
		}
	})

	t.Run("anonymous_snapshot_has_no_author", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)

		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: "who am I",
		})
		testutil.AssertNoError(t, err)

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentAuthor != "Anonymous" {
			t.Errorf("expected Anonymous author label, got %q", fresh.LastCommentAuthor)
		}
		if fresh.LastCommentUserID != nil {
			t.Errorf("expected nil snapshot author ID, got %v", *fresh.LastCommentUserID)
		}
	})

	t.Run("long_excerpt_truncated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)

		long := strings.Repeat("a", 250)
		_, err := svc.Create(anonIdent("fp-1"), CommentCreateInput{
			Target:  stockRef(stock.ID),
			Content: long,
		})
		testutil.AssertNoError(t, err)

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if len([]rune(fresh.LastCommentExcerpt)) != 200 {
			t.Errorf("expected 200-rune excerpt, got %d", len([]rune(fresh.LastCommentExcerpt)))
		}
		if !strings.HasSuffix(fresh.LastCommentExcerpt, "...") {
			t.Errorf("expected ellipsis suffix, got %q", fresh.LastCommentExcerpt[190:])
		}
	})
}

func TestListComments(t *testing.T) {
	t.Run("builds_thread_view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		older := mustCreate(t, svc, userIdent(user.ID), stock.ID, "older top-level", nil)
		replyA := mustCreate(t, svc, anonIdent("fp-a"), stock.ID, "first reply", &older.ID)
		replyB := mustCreate(t, svc, anonIdent("fp-b"), stock.ID, "second reply", &older.ID)
		newer := mustCreate(t, svc, userIdent(user.ID), stock.ID, "newer top-level", nil)

		tree, err := svc.List(stockRef(stock.ID))
		testutil.AssertNoError(t, err)

		if len(tree) != 2 {
			t.Fatalf("expected 2 top-level comments, got %d", len(tree))
		}
		// Top level is newest-first.
		if tree[0].ID != newer.ID || tree[1].ID != older.ID {
			t.Errorf("expected top-level order [%d %d], got [%d %d]", newer.ID, older.ID, tree[0].ID, tree[1].ID)
		}
		// Replies stay oldest-first.
		replies := tree[1].Replies
		if len(replies) != 2 {
			t.Fatalf("expected 2 replies, got %d", len(replies))
		}
		if replies[0].ID != replyA.ID || replies[1].ID != replyB.ID {
			t.Errorf("expected reply order [%d %d], got [%d %d]", replyA.ID, replyB.ID, replies[0].ID, replies[1].ID)
		}
	})

	t.Run("orphaned_replies_dropped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		parent := mustCreate(t, svc, userIdent(user.ID), stock.ID, "soon to go", nil)
		mustCreate(t, svc, anonIdent("fp-a"), stock.ID, "orphan", &parent.ID)
		keeper := mustCreate(t, svc, userIdent(user.ID), stock.ID, "still here", nil)

		testutil.AssertNoError(t, svc.Delete(parent.ID, userIdent(user.ID)))

		tree, err := svc.List(stockRef(stock.ID))
		testutil.AssertNoError(t, err)

		if len(tree) != 1 {
			t.Fatalf("expected only the surviving top-level comment, got %d", len(tree))
		}
		if tree[0].ID != keeper.ID {
			t.Errorf("expected comment %d, got %d", keeper.ID, tree[0].ID)
		}
		if len(tree[0].Replies) != 0 {
			t.Errorf("expected orphan to stay hidden, got %d replies", len(tree[0].Replies))
		}
	})

	t.Run("target_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)

		_, err := svc.List(stockRef(9999))
		testutil.AssertAppError(t, err, "STOCK_NOT_FOUND")
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("author_edits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "orginal", nil)

		updated, err := svc.Update(comment.ID, userIdent(user.ID), "original")
		testutil.AssertNoError(t, err)
		if updated.Content != "original" {
			t.Errorf("expected updated content, got %q", updated.Content)
		}
	})

	t.Run("refreshes_snapshot_excerpt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "first take", nil)

		_, err := svc.Update(comment.ID, userIdent(user.ID), "second take")
		testutil.AssertNoError(t, err)

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentExcerpt != "second take" {
			t.Errorf("expected refreshed excerpt, got %q", fresh.LastCommentExcerpt)
		}
	})

	t.Run("editing_older_comment_keeps_excerpt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		older := mustCreate(t, svc, userIdent(user.ID), stock.ID, "older", nil)
		mustCreate(t, svc, userIdent(user.ID), stock.ID, "latest", nil)

		_, err := svc.Update(older.ID, userIdent(user.ID), "older edited")
		testutil.AssertNoError(t, err)

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentExcerpt != "latest" {
			t.Errorf("expected snapshot to stay on the latest comment, got %q", fresh.LastCommentExcerpt)
		}
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "mine", nil)

		_, err := svc.Update(comment.ID, userIdent(other.ID), "stolen")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("anonymous_comment_locked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, anonIdent("fp-1"), stock.ID, "anon", nil)

		_, err := svc.Update(comment.ID, anonIdent("fp-1"), "edited")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Update(9999, userIdent(user.ID), "ghost")
		testutil.AssertAppError(t, err, "COMMENT_NOT_FOUND")
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("decrements_count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "short-lived", nil)

		testutil.AssertNoError(t, svc.Delete(comment.ID, userIdent(user.ID)))

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.CommentCount != 0 {
			t.Errorf("expected comment_count 0, got %d", fresh.CommentCount)
		}
	})

	t.Run("promotes_surviving_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		survivor := mustCreate(t, svc, userIdent(user.ID), stock.ID, "the survivor", nil)
		// Distinct timestamps so the promotion order is unambiguous.
		db.Model(survivor).Update("created_at", time.Now().Add(-time.Minute))
		latest := mustCreate(t, svc, userIdent(user.ID), stock.ID, "the latest", nil)

		testutil.AssertNoError(t, svc.Delete(latest.ID, userIdent(user.ID)))

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentID == nil || *fresh.LastCommentID != survivor.ID {
			t.Errorf("expected snapshot promoted to %d, got %v", survivor.ID, fresh.LastCommentID)
		}
		if fresh.LastCommentExcerpt != "the survivor" {
			t.Errorf("expected survivor excerpt, got %q", fresh.LastCommentExcerpt)
		}
	})

	t.Run("clears_snapshot_when_last_comment_goes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "only one", nil)

		testutil.AssertNoError(t, svc.Delete(comment.ID, userIdent(user.ID)))

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentID != nil {
			t.Errorf("expected cleared snapshot, got %v", *fresh.LastCommentID)
		}
		if fresh.LastCommentExcerpt != "" || fresh.LastCommentAuthor != "" {
			t.Errorf("expected empty snapshot fields, got %q/%q", fresh.LastCommentExcerpt, fresh.LastCommentAuthor)
		}
	})

	t.Run("deleting_older_comment_keeps_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)

		older := mustCreate(t, svc, userIdent(user.ID), stock.ID, "older", nil)
		db.Model(older).Update("created_at", time.Now().Add(-time.Minute))
		latest := mustCreate(t, svc, userIdent(user.ID), stock.ID, "latest", nil)

		testutil.AssertNoError(t, svc.Delete(older.ID, userIdent(user.ID)))

		var fresh models.Stock
		db.First(&fresh, stock.ID)
		if fresh.LastCommentID == nil || *fresh.LastCommentID != latest.ID {
			t.Errorf("expected snapshot to stay on %d, got %v", latest.ID, fresh.LastCommentID)
		}
		if fresh.CommentCount != 1 {
			t.Errorf("expected comment_count 1, got %d", fresh.CommentCount)
		}
	})

	t.Run("removes_comment_votes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		votes := NewVoteService(db)
		user := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "votable", nil)

		_, err := votes.Apply(models.TargetRef{Type: models.TargetComment, ID: comment.ID}, anonIdent("fp-1"), models.VoteUp)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Delete(comment.ID, userIdent(user.ID)))

		var voteCount int64
		db.Model(&models.Vote{}).Where("target_type = ? AND target_id = ?", models.TargetComment, comment.ID).Count(&voteCount)
		if voteCount != 0 {
			t.Errorf("expected vote rows removed with the comment, got %d", voteCount)
		}
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCommentService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		stock := testutil.CreateTestStock(t, db)
		comment := mustCreate(t, svc, userIdent(user.ID), stock.ID, "mine", nil)

		err := svc.Delete(comment.ID, userIdent(other.ID))
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

// mustCreate posts a comment on a stock through the service and fails the
// test on error.
func mustCreate(t *testing.T, svc CommentServicer, ident identity.Identity, stockID uint, content string, parentID *uint) *models.Comment {
	t.Helper()

	comment, err := svc.Create(ident, CommentCreateInput{
		Target:          stockRef(stockID),
		Content:         content,
		ParentCommentID: parentID,
	})
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}
