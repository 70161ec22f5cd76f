package services

import (
	"testing"

	"stockforum/internal/pagination"
	"stockforum/internal/testutil"
)

func TestCreateConversation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewConversationService(db)
		user := testutil.CreateTestUser(t, db)

		conversation, err := svc.CreateConversation(user.ID, "Rate hikes", "What happens next?")
		testutil.AssertNoError(t, err)

		if conversation.ID == 0 {
			t.Fatal("expected non-zero conversation ID")
		}
		if conversation.UserID != user.ID {
			t.Errorf("expected author %d, got %d", user.ID, conversation.UserID)
		}
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewConversationService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateConversation(user.ID, "  ", "body")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListConversations(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewConversationService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestConversation(t, db, user.ID)
		testutil.CreateTestConversation(t, db, user.ID)

		result, err := svc.ListConversations(pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Fatalf("expected 2 conversations, got %d", result.TotalItems)
		}
		if result.Data[0].User == nil {
			t.Error("expected author preloaded")
		}
	})
}

func TestDeleteConversation(t *testing.T) {
	t.Run("author_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewConversationService(db)
		user := testutil.CreateTestUser(t, db)
		conversation := testutil.CreateTestConversation(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteConversation(user.ID, conversation.ID))

		_, err := svc.GetConversationByID(conversation.ID)
		testutil.AssertAppError(t, err, "CONVERSATION_NOT_FOUND")
	})

	t.Run("non_author_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewConversationService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		conversation := testutil.CreateTestConversation(t, db, user.ID)

		err := svc.DeleteConversation(other.ID, conversation.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
