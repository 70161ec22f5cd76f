// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	symbolRegex = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,11}$`)
	slugRegex   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("vote_direction", validateVoteDirection)
		_ = v.RegisterValidation("ticker_symbol", validateTickerSymbol)
		_ = v.RegisterValidation("article_slug", validateArticleSlug)
	}
}

func validateVoteDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "up", "down":
		return true
	}
	return false
}

func validateTickerSymbol(fl validator.FieldLevel) bool {
	return symbolRegex.MatchString(fl.Field().String())
}

func validateArticleSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}
