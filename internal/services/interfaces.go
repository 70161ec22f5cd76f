package services

import (
	"mime/multipart"

	"stockforum/internal/identity"
	"stockforum/internal/models"
	"stockforum/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, username, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// StockUpdateFields holds optional merge-patch fields for a stock update.
// Nil pointers mean "unchanged".
type StockUpdateFields struct {
	Name          *string
	Exchange      *string
	Sector        *string
	Industry      *string
	Description   *string
	PriceCents    *int64
	MarketCap     *int64
	PERatio       *float64
	DividendYield *float64
}

// StockServicer defines the contract for stock listings.
type StockServicer interface {
	CreateStock(symbol, name string, fields StockUpdateFields) (*models.Stock, error)
	ListStocks(page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error)
	GetStockBySymbol(symbol string) (*models.Stock, error)
	UpdateStock(symbol string, fields StockUpdateFields) (*models.Stock, error)
}

// ConversationServicer defines the contract for general discussion posts.
type ConversationServicer interface {
	CreateConversation(userID uint, title, body string) (*models.Conversation, error)
	ListConversations(page pagination.PageRequest) (*pagination.PageResponse[models.Conversation], error)
	GetConversationByID(id uint) (*models.Conversation, error)
	DeleteConversation(userID, id uint) error
}

// PortfolioServicer defines the contract for shared portfolio posts.
type PortfolioServicer interface {
	CreatePost(userID uint, title, body, imageURL string) (*models.PortfolioPost, error)
	ListPosts(page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioPost], error)
	GetPostByID(id uint) (*models.PortfolioPost, error)
	DeletePost(userID, id uint) error
}

// ArticleServicer defines the contract for editorial articles.
type ArticleServicer interface {
	CreateArticle(userID uint, slug, title, body string, published bool) (*models.Article, error)
	ListArticles(page pagination.PageRequest) (*pagination.PageResponse[models.Article], error)
	GetArticleBySlug(slug string) (*models.Article, error)
}

// CommentCreateInput carries the fields for a new comment.
type CommentCreateInput struct {
	Target          models.TargetRef
	Content         string
	ParentCommentID *uint
	Anonymous       bool
}

// CommentNode is a comment with its attached replies, as returned by the
// tree builder.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// CommentServicer defines the contract for the comment store and tree builder.
type CommentServicer interface {
	Create(ident identity.Identity, in CommentCreateInput) (*models.Comment, error)
	List(ref models.TargetRef) ([]*CommentNode, error)
	Update(commentID uint, ident identity.Identity, content string) (*models.Comment, error)
	Delete(commentID uint, ident identity.Identity) error
}

// VoteServicer defines the contract for the vote ledger.
type VoteServicer interface {
	Apply(ref models.TargetRef, ident identity.Identity, direction models.VoteDirection) (*models.VoteTotals, error)
	Remove(ref models.TargetRef, ident identity.Identity) (*models.VoteTotals, error)
}

// ImageUploadResult holds the outcome of an image upload.
type ImageUploadResult struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// ImageServicer defines the contract for hosting portfolio screenshots.
type ImageServicer interface {
	Upload(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error)
}
