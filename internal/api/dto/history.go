package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionResponse is one ledger row; shares are signed (negative for
// a sell)
type TransactionResponse struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// HistoryListResponse is the transaction history with pagination metadata
type HistoryListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Pagination PaginationInfo        `json:"pagination"`
}
