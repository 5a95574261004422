package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/core/service"
)

type QuoteHandler struct {
	quotes service.QuoteLookup
}

func NewQuoteHandler(quotes service.QuoteLookup) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
	}
}

// Quote handles GET and POST /quote
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "missing symbol",
			Code:    http.StatusBadRequest,
		})
		return
	}

	quote, err := h.quotes.Lookup(c.Request.Context(), req.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Name:   quote.Name,
		Symbol: quote.Symbol,
		Price:  quote.Price,
	})
}
