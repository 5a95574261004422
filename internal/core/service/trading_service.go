package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/repository"
)

type TradingService struct {
	transactionRepo repository.TransactionRepository
	quotes          QuoteLookup
}

func NewTradingService(transactionRepo repository.TransactionRepository, quotes QuoteLookup) *TradingService {
	return &TradingService{
		transactionRepo: transactionRepo,
		quotes:          quotes,
	}
}

// Buy validates the buy input, resolves the symbol to a current price and
// executes the trade. Affordability is enforced inside the ledger
// transaction so a concurrent buy cannot drive cash negative.
func (s *TradingService) Buy(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error) {
	if symbol == "" {
		return nil, NewServiceError(http.StatusBadRequest, "missing symbol")
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	count, err := parseShares(shares)
	if err != nil {
		return nil, err
	}

	trade := domain.NewTransaction(userID, quote.Symbol, count, quote.Price)
	if err := s.transactionRepo.RecordTrade(ctx, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// Sell validates the sell input against current holdings and executes the
// trade as a negative-shares ledger entry. Zero holdings for the symbol
// is an insufficient-shares error, not a crash.
func (s *TradingService) Sell(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error) {
	if symbol == "" {
		return nil, NewServiceError(http.StatusBadRequest, "missing symbol")
	}

	count, err := parseShares(shares)
	if err != nil {
		return nil, err
	}

	held, err := s.transactionRepo.SharesHeld(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}
	if count > held {
		return nil, fmt.Errorf("%w: selling %d, own %d", domain.ErrInsufficientShares, count, held)
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	trade := domain.NewTransaction(userID, quote.Symbol, -count, quote.Price)
	if err := s.transactionRepo.RecordTrade(ctx, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// parseShares parses the share count form field as a strictly positive
// integer, per the validation taxonomy for malformed input.
func parseShares(shares string) (int64, error) {
	if shares == "" {
		return 0, NewServiceError(http.StatusBadRequest, "missing shares")
	}
	count, err := strconv.ParseInt(shares, 10, 64)
	if err != nil || count <= 0 {
		return 0, NewServiceError(http.StatusBadRequest, "invalid shares")
	}
	return count, nil
}
