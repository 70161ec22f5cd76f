package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/models"
	"stockforum/internal/pagination"
	"stockforum/internal/sanitize"
)

// stockService handles stock listings.
type stockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockServicer.
func NewStockService(db *gorm.DB) StockServicer {
	return &stockService{db: db}
}

// CreateStock creates a listing. Optional financial fields are applied from
// the same sparse field set used by updates.
func (s *stockService) CreateStock(symbol, name string, fields StockUpdateFields) (*models.Stock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	name = strings.TrimSpace(name)
	if symbol == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol and name are required")
	}

	var count int64
	s.db.Model(&models.Stock{}).Where("symbol = ?", symbol).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateSymbol
	}

	stock := &models.Stock{
		Symbol:        symbol,
		Name:          name,
		PriceCents:    fields.PriceCents,
		MarketCap:     fields.MarketCap,
		PERatio:       fields.PERatio,
		DividendYield: fields.DividendYield,
	}
	if fields.Exchange != nil {
		stock.Exchange = *fields.Exchange
	}
	if fields.Sector != nil {
		stock.Sector = *fields.Sector
	}
	if fields.Industry != nil {
		stock.Industry = *fields.Industry
	}
	if fields.Description != nil {
		stock.Description = sanitize.Text(*fields.Description)
	}

	if err := s.db.Create(stock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stock, nil
}

// ListStocks retrieves a paginated list of listings ordered by symbol.
func (s *stockService) ListStocks(page pagination.PageRequest) (*pagination.PageResponse[models.Stock], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Stock{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stocks []models.Stock
	if err := base.Order("symbol ASC").Scopes(pagination.Paginate(page)).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stocks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStockBySymbol retrieves a listing by ticker symbol.
func (s *stockService) GetStockBySymbol(symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := s.db.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(symbol))).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}

// UpdateStock merge-patches a listing: only non-nil fields are applied,
// absent fields keep their stored value.
func (s *stockService) UpdateStock(symbol string, fields StockUpdateFields) (*models.Stock, error) {
	stock, err := s.GetStockBySymbol(symbol)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.Exchange != nil {
		updates["exchange"] = *fields.Exchange
	}
	if fields.Sector != nil {
		updates["sector"] = *fields.Sector
	}
	if fields.Industry != nil {
		updates["industry"] = *fields.Industry
	}
	if fields.Description != nil {
		updates["description"] = sanitize.Text(*fields.Description)
	}
	if fields.PriceCents != nil {
		updates["price_cents"] = *fields.PriceCents
	}
	if fields.MarketCap != nil {
		updates["market_cap"] = *fields.MarketCap
	}
	if fields.PERatio != nil {
		updates["pe_ratio"] = *fields.PERatio
	}
	if fields.DividendYield != nil {
		updates["dividend_yield"] = *fields.DividendYield
	}

	if len(updates) > 0 {
		if err := s.db.Model(stock).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", stock.ID).First(stock).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return stock, nil
}
