package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockforum/internal/errors"
	"stockforum/internal/pagination"
	"stockforum/internal/services"
)

// StockHandler handles stock listing requests.
type StockHandler struct {
	stockService services.StockServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService services.StockServicer) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateStockRequest represents the request payload for creating a listing.
type CreateStockRequest struct {
	Symbol        string   `json:"symbol" binding:"required,ticker_symbol"`
	Name          string   `json:"name" binding:"required,min=1,max=200"`
	Exchange      *string  `json:"exchange" binding:"omitempty,max=20"`
	Sector        *string  `json:"sector" binding:"omitempty,max=100"`
	Industry      *string  `json:"industry" binding:"omitempty,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	PriceCents    *int64   `json:"price_cents" binding:"omitempty,gte=0"`
	MarketCap     *int64   `json:"market_cap" binding:"omitempty,gte=0"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield" binding:"omitempty,gte=0"`
}

// UpdateStockRequest represents the merge-patch payload for a listing.
// Absent fields are left unchanged.
type UpdateStockRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Exchange      *string  `json:"exchange" binding:"omitempty,max=20"`
	Sector        *string  `json:"sector" binding:"omitempty,max=100"`
	Industry      *string  `json:"industry" binding:"omitempty,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	PriceCents    *int64   `json:"price_cents" binding:"omitempty,gte=0"`
	MarketCap     *int64   `json:"market_cap" binding:"omitempty,gte=0"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield" binding:"omitempty,gte=0"`
}

func (r *UpdateStockRequest) fields() services.StockUpdateFields {
	return services.StockUpdateFields{
		Name:          r.Name,
		Exchange:      r.Exchange,
		Sector:        r.Sector,
		Industry:      r.Industry,
		Description:   r.Description,
		PriceCents:    r.PriceCents,
		MarketCap:     r.MarketCap,
		PERatio:       r.PERatio,
		DividendYield: r.DividendYield,
	}
}

// CreateStock handles the creation of a new stock listing
// @Summary     Create a stock listing
// @Description Create a new stock listing with an optional set of financial fields
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateStockRequest true "Stock details"
// @Success     201 {object} map[string]interface{} "Stock created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Symbol already listed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [post]
func (h *StockHandler) CreateStock(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stockService.CreateStock(req.Symbol, req.Name, services.StockUpdateFields{
		Exchange:      req.Exchange,
		Sector:        req.Sector,
		Industry:      req.Industry,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		MarketCap:     req.MarketCap,
		PERatio:       req.PERatio,
		DividendYield: req.DividendYield,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"stock": stock})
}

// ListStocks handles the retrieval of stock listings
// @Summary     List stocks
// @Description Get a paginated list of stock listings ordered by symbol
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Stock] "Paginated stocks"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.stockService.ListStocks(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStockBySymbol handles the retrieval of a specific listing
// @Summary     Get stock by symbol
// @Description Get a stock listing by ticker symbol, including vote totals and comment summary
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]interface{} "Stock details"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks/{symbol} [get]
func (h *StockHandler) GetStockBySymbol(c *gin.Context) {
	stock, err := h.stockService.GetStockBySymbol(c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// UpdateStock handles merge-patch updates of a listing
// @Summary     Update stock
// @Description Update a stock listing. Only fields present in the payload are changed.
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       symbol  path string             true "Ticker symbol"
// @Param       request body UpdateStockRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated stock"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Stock not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks/{symbol} [patch]
func (h *StockHandler) UpdateStock(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.stockService.UpdateStock(c.Param("symbol"), req.fields())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
