package dto

import "github.com/shopspring/decimal"

// PositionResponse is one valued portfolio line
type PositionResponse struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Total  decimal.Decimal `json:"total"`
}

// PortfolioResponse is the portfolio view: holdings valued at current
// prices plus the cash balance and grand total
type PortfolioResponse struct {
	Positions []PositionResponse `json:"positions"`
	Cash      decimal.Decimal    `json:"cash"`
	Total     decimal.Decimal    `json:"total"`
}
