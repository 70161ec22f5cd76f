// Package errors provides custom error types for the forum API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "This username is already taken", StatusCode: http.StatusConflict}
)

// Content errors.
var (
	ErrStockNotFound         = &AppError{Code: "STOCK_NOT_FOUND", Message: "Stock not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSymbol       = &AppError{Code: "DUPLICATE_SYMBOL", Message: "A stock with this symbol already exists", StatusCode: http.StatusConflict}
	ErrConversationNotFound  = &AppError{Code: "CONVERSATION_NOT_FOUND", Message: "Conversation not found", StatusCode: http.StatusNotFound}
	ErrPortfolioPostNotFound = &AppError{Code: "PORTFOLIO_POST_NOT_FOUND", Message: "Portfolio post not found", StatusCode: http.StatusNotFound}
	ErrArticleNotFound       = &AppError{Code: "ARTICLE_NOT_FOUND", Message: "Article not found", StatusCode: http.StatusNotFound}
)

// Comment errors.
var (
	ErrCommentNotFound       = &AppError{Code: "COMMENT_NOT_FOUND", Message: "Comment not found", StatusCode: http.StatusNotFound}
	ErrParentCommentNotFound = &AppError{Code: "PARENT_COMMENT_NOT_FOUND", Message: "Parent comment not found", StatusCode: http.StatusNotFound}
)

// Vote ledger errors. Both are idempotency violations surfaced as client
// errors, never as server faults.
var (
	ErrDuplicateVote = &AppError{Code: "DUPLICATE_VOTE", Message: "This vote has already been cast", StatusCode: http.StatusBadRequest}
	ErrNoVoteFound   = &AppError{Code: "NO_VOTE_FOUND", Message: "No vote to remove", StatusCode: http.StatusBadRequest}
)

// Upload errors.
var (
	ErrUploadFailed = &AppError{Code: "UPLOAD_FAILED", Message: "Image upload failed", StatusCode: http.StatusBadGateway}
)
