package domain

import "github.com/shopspring/decimal"

// Quote is the current name/symbol/price tuple for a tradable stock,
// as returned by the external price source.
type Quote struct {
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}
