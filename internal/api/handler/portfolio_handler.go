package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/api/util"
	"github.com/martijn/papertrade/internal/core/repository"
	"github.com/martijn/papertrade/internal/core/service"
)

// Allowed fields for history queries and ordering
var (
	historyQueryFields = []string{"id", "symbol", "shares", "price", "timestamp"}
	historyOrderFields = []string{"id", "symbol", "shares", "timestamp"}
)

type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Index handles GET /: the user's holdings valued at current prices
func (h *PortfolioHandler) Index(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.Portfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.PortfolioResponse{
		Positions: make([]dto.PositionResponse, len(portfolio.Positions)),
		Cash:      portfolio.Cash,
		Total:     portfolio.Total,
	}
	for i, position := range portfolio.Positions {
		resp.Positions[i] = dto.PositionResponse{
			Symbol: position.Symbol,
			Name:   position.Name,
			Shares: position.Shares,
			Price:  position.Price,
			Total:  position.Total,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /history
func (h *PortfolioHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Parse pagination parameters; per_page 0 returns the full history
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))

	filter := repository.TransactionFilter{
		ListFilter: util.ListFilter{
			Page:    page,
			PerPage: perPage,
		},
	}

	// Parse query filters
	if queryStr := c.Query("query"); queryStr != "" {
		filters, err := util.ParseQueryString(queryStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		// Validate field names
		if err := util.ValidateFilterFields(filters, historyQueryFields); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		filter.Filters = filters
	}

	// Parse order
	if orderStr := c.Query("order"); orderStr != "" {
		orders, err := util.ParseOrderString(orderStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		// Validate field names
		if err := util.ValidateOrderFields(orders, historyOrderFields); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		filter.Order = orders
	}

	transactions, count, err := h.portfolioService.History(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	// Calculate pagination info
	totalPages := 1
	if perPage > 0 {
		totalPages = (count + perPage - 1) / perPage
	}

	resp := dto.HistoryListResponse{
		Items: make([]dto.TransactionResponse, len(transactions)),
		Pagination: dto.PaginationInfo{
			Total:      count,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}
	for i, transaction := range transactions {
		resp.Items[i] = dto.TransactionResponse{
			ID:        transaction.ID,
			Symbol:    transaction.Symbol,
			Shares:    transaction.Shares,
			Price:     transaction.Price,
			Timestamp: transaction.Timestamp,
		}
	}

	c.JSON(http.StatusOK, resp)
}
