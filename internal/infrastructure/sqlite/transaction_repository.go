package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/repository"
)

type transactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// RecordTrade runs the read-validate-write sequence for a buy or sell as
// one database transaction: read cash (and holdings for a sell), enforce
// the non-negative invariants, update cash, append the ledger row.
func (r *transactionRepository) RecordTrade(ctx context.Context, trade *domain.Transaction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback()

	var cash decimal.Decimal
	err = tx.GetContext(ctx, &cash, `SELECT cash FROM users WHERE id = ?`, trade.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d: %w", trade.UserID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read cash balance: %w", err)
	}

	// Signed shares make this work for both directions: a buy subtracts
	// cost, a sell has negative shares so the cost is negative revenue.
	cost := trade.Price.Mul(decimal.NewFromInt(trade.Shares))
	newCash := cash.Sub(cost)

	if trade.Shares > 0 && newCash.IsNegative() {
		return fmt.Errorf("%w: need %s, have %s", domain.ErrInsufficientFunds, cost, cash)
	}

	if trade.Shares < 0 {
		var held sql.NullInt64
		err = tx.GetContext(ctx, &held,
			`SELECT SUM(shares) FROM transactions WHERE user_id = ? AND symbol = ?`,
			trade.UserID, trade.Symbol,
		)
		if err != nil {
			return fmt.Errorf("failed to read holdings: %w", err)
		}
		// held.Int64 is zero when the user has no rows for this symbol,
		// which is exactly the "no holdings" case.
		if held.Int64+trade.Shares < 0 {
			return fmt.Errorf("%w: selling %d, own %d", domain.ErrInsufficientShares, -trade.Shares, held.Int64)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET cash = ?, updated_at = ? WHERE id = ?`,
		newCash, trade.Timestamp, trade.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust cash: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, symbol, shares, price, timestamp) VALUES (?, ?, ?, ?, ?)`,
		trade.UserID, trade.Symbol, trade.Shares, trade.Price, trade.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction id: %w", err)
	}
	trade.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade: %w", err)
	}

	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int64, filter repository.TransactionFilter) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, timestamp
		FROM transactions
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	query, args = ApplyFilters(query, args, filter.Filters)
	query = ApplyOrdering(query, filter.Order, "timestamp ASC, id ASC")
	query, args = ApplyPagination(query, args, filter.Page, filter.PerPage)

	var transactions []*domain.Transaction
	err := r.db.SelectContext(ctx, &transactions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) CountByUser(ctx context.Context, userID int64, filter repository.TransactionFilter) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = ?`
	args := []interface{}{userID}

	query, args = ApplyFilters(query, args, filter.Filters)

	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

func (r *transactionRepository) HoldingsByUser(ctx context.Context, userID int64) ([]*domain.Holding, error) {
	query := `
		SELECT symbol, SUM(shares) AS total_shares
		FROM transactions
		WHERE user_id = ?
		GROUP BY symbol
		HAVING total_shares > 0
		ORDER BY symbol
	`
	var holdings []*domain.Holding
	err := r.db.SelectContext(ctx, &holdings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate holdings: %w", err)
	}
	return holdings, nil
}

func (r *transactionRepository) SharesHeld(ctx context.Context, userID int64, symbol string) (int64, error) {
	query := `SELECT SUM(shares) FROM transactions WHERE user_id = ? AND symbol = ?`

	var held sql.NullInt64
	err := r.db.GetContext(ctx, &held, query, userID, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to read holdings: %w", err)
	}
	return held.Int64, nil
}
