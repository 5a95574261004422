package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/api/middleware"
	"github.com/martijn/papertrade/internal/core/repository"
	"github.com/martijn/papertrade/internal/core/service"
)

type TradeHandler struct {
	tradingService   *service.TradingService
	portfolioService *service.PortfolioService
	userRepo         repository.UserRepository
}

func NewTradeHandler(
	tradingService *service.TradingService,
	portfolioService *service.PortfolioService,
	userRepo repository.UserRepository,
) *TradeHandler {
	return &TradeHandler{
		tradingService:   tradingService,
		portfolioService: portfolioService,
		userRepo:         userRepo,
	}
}

// Buy handles POST /buy
func (h *TradeHandler) Buy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if _, err := h.tradingService.Buy(c.Request.Context(), userID, req.Symbol, req.Shares); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// BuyForm handles GET /buy: the cash available to spend
func (h *TradeHandler) BuyForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BuyFormResponse{Cash: user.Cash})
}

// Sell handles POST /sell
func (h *TradeHandler) Sell(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if _, err := h.tradingService.Sell(c.Request.Context(), userID, req.Symbol, req.Shares); err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// SellForm handles GET /sell: the symbols the user can sell
func (h *TradeHandler) SellForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	holdings, err := h.portfolioService.Holdings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.SellFormResponse{
		Holdings: make([]dto.HoldingResponse, len(holdings)),
	}
	for i, holding := range holdings {
		resp.Holdings[i] = dto.HoldingResponse{
			Symbol: holding.Symbol,
			Shares: holding.Shares,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// currentUserID pulls the authenticated user id from the session claims.
// The session middleware guarantees the claims exist on protected routes;
// the fallback guards against wiring mistakes.
func currentUserID(c *gin.Context) (int64, bool) {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "No session",
			Code:    http.StatusUnauthorized,
		})
		return 0, false
	}
	return claims.UserID, true
}
