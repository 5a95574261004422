package dto

import "github.com/shopspring/decimal"

// TradeRequest carries the buy/sell form fields. Shares stays a string
// here; the service parses it so malformed input surfaces as "invalid
// shares" rather than a bind error.
type TradeRequest struct {
	Symbol string `form:"symbol" json:"symbol"`
	Shares string `form:"shares" json:"shares"`
}

// BuyFormResponse backs the buy form: the cash available to spend
type BuyFormResponse struct {
	Cash decimal.Decimal `json:"cash"`
}

// HoldingResponse is one net position, as listed by the sell form
type HoldingResponse struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// SellFormResponse backs the sell form: the symbols available to sell
type SellFormResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
}
