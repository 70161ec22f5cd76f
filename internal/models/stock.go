package models

// Stock is a listed security open for discussion. Most financial fields are
// optional: absent values stay NULL and are left untouched by merge-patch
// updates.
type Stock struct {
	Base
	Symbol        string   `gorm:"uniqueIndex;size:12;not null" json:"symbol"`
	Name          string   `gorm:"size:200;not null" json:"name"`
	Exchange      string   `gorm:"size:20" json:"exchange,omitempty"`
	Sector        string   `gorm:"size:100" json:"sector,omitempty"`
	Industry      string   `gorm:"size:100" json:"industry,omitempty"`
	Description   string   `gorm:"type:text" json:"description,omitempty"`
	PriceCents    *int64   `json:"price_cents,omitempty"`
	MarketCap     *int64   `json:"market_cap,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`

	VoteTotals
	CommentSummary
}
