package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"stockforum/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Username: fmt.Sprintf("user%d", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestStock creates a stock listing with a unique symbol.
func CreateTestStock(t *testing.T, db *gorm.DB) *models.Stock {
	t.Helper()

	n := nextID()
	stock := &models.Stock{
		Symbol: fmt.Sprintf("TST%d", n),
		Name:   fmt.Sprintf("Test Stock %d", n),
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return stock
}

// CreateTestConversation creates a discussion post by the given user.
func CreateTestConversation(t *testing.T, db *gorm.DB, userID uint) *models.Conversation {
	t.Helper()

	conversation := &models.Conversation{
		UserID: userID,
		Title:  fmt.Sprintf("Test Conversation %d", nextID()),
		Body:   "What does everyone think?",
	}
	if err := db.Create(conversation).Error; err != nil {
		t.Fatalf("failed to create test conversation: %v", err)
	}
	return conversation
}

// CreateTestPortfolioPost creates a portfolio post by the given user.
func CreateTestPortfolioPost(t *testing.T, db *gorm.DB, userID uint) *models.PortfolioPost {
	t.Helper()

	post := &models.PortfolioPost{
		UserID: userID,
		Title:  fmt.Sprintf("Test Portfolio %d", nextID()),
		Body:   "Mostly index funds.",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test portfolio post: %v", err)
	}
	return post
}

// CreateTestArticle creates a published article by the given user.
func CreateTestArticle(t *testing.T, db *gorm.DB, userID uint) *models.Article {
	t.Helper()

	n := nextID()
	article := &models.Article{
		UserID:    userID,
		Slug:      fmt.Sprintf("test-article-%d", n),
		Title:     fmt.Sprintf("Test Article %d", n),
		Body:      "Long-form market commentary.",
		Published: true,
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("failed to create test article: %v", err)
	}
	return article
}

// CreateTestComment creates a top-level comment on a stock by the given user.
func CreateTestComment(t *testing.T, db *gorm.DB, userID, stockID uint) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content: fmt.Sprintf("Test comment %d", nextID()),
		UserID:  &userID,
		StockID: &stockID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
