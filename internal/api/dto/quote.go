package dto

import "github.com/shopspring/decimal"

// QuoteRequest carries the quote form field
type QuoteRequest struct {
	Symbol string `form:"symbol" json:"symbol"`
}

// QuoteResponse presents a looked-up quote
type QuoteResponse struct {
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}
