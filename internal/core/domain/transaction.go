package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row in the append-only trade ledger. Shares are
// signed: positive for a buy, negative for a sell. Rows are never
// updated or deleted; holdings are always recomputed by aggregation.
type Transaction struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Symbol    string          `db:"symbol"`
	Shares    int64           `db:"shares"`
	Price     decimal.Decimal `db:"price"`
	Timestamp time.Time       `db:"timestamp"`
}

func NewTransaction(userID int64, symbol string, shares int64, price decimal.Decimal) *Transaction {
	return &Transaction{
		UserID:    userID,
		Symbol:    symbol,
		Shares:    shares,
		Price:     price,
		Timestamp: time.Now(),
	}
}

// Holding is a derived per-symbol position: the net share count across
// all of a user's transactions for that symbol.
type Holding struct {
	Symbol string `db:"symbol"`
	Shares int64  `db:"total_shares"`
}
