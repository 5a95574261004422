package repository

import (
	"context"

	"github.com/martijn/papertrade/internal/api/util"
	"github.com/martijn/papertrade/internal/core/domain"
)

// TransactionFilter embeds ListFilter for generic query/order/pagination
type TransactionFilter struct {
	util.ListFilter
}

type TransactionRepository interface {
	// RecordTrade appends the transaction and adjusts the user's cash
	// balance as a single database transaction. The cash and holdings
	// checks run inside the same transaction, so concurrent trades for
	// one user cannot drive cash or a position negative. Returns
	// domain.ErrInsufficientFunds or domain.ErrInsufficientShares when
	// the trade would violate those invariants.
	RecordTrade(ctx context.Context, trade *domain.Transaction) error

	ListByUser(ctx context.Context, userID int64, filter TransactionFilter) ([]*domain.Transaction, error)
	CountByUser(ctx context.Context, userID int64, filter TransactionFilter) (int, error)

	// HoldingsByUser returns net positions with a positive share count,
	// recomputed from the ledger.
	HoldingsByUser(ctx context.Context, userID int64) ([]*domain.Holding, error)
	// SharesHeld returns the net share count for one symbol; zero when
	// the user holds nothing.
	SharesHeld(ctx context.Context, userID int64, symbol string) (int64, error)
}
