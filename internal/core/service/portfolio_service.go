package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/repository"
)

type PortfolioService struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	quotes          QuoteLookup
}

func NewPortfolioService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	quotes QuoteLookup,
) *PortfolioService {
	return &PortfolioService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		quotes:          quotes,
	}
}

// Position is one valued line of a portfolio
type Position struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Total  decimal.Decimal
}

// Portfolio is the user's cash balance plus all valued positions
type Portfolio struct {
	Positions []Position
	Cash      decimal.Decimal
	Total     decimal.Decimal
}

// Portfolio recomputes the user's holdings from the ledger and values
// each position at the current looked-up price. A failed lookup for a
// held symbol fails the whole request.
func (s *PortfolioService) Portfolio(ctx context.Context, userID int64) (*Portfolio, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.transactionRepo.HoldingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Positions: make([]Position, 0, len(holdings)),
		Cash:      user.Cash,
		Total:     user.Cash,
	}

	for _, holding := range holdings {
		quote, err := s.quotes.Lookup(ctx, holding.Symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to price %s: %w", holding.Symbol, err)
		}

		total := quote.Price.Mul(decimal.NewFromInt(holding.Shares))
		portfolio.Positions = append(portfolio.Positions, Position{
			Symbol: holding.Symbol,
			Name:   quote.Name,
			Shares: holding.Shares,
			Price:  quote.Price,
			Total:  total,
		})
		portfolio.Total = portfolio.Total.Add(total)
	}

	return portfolio, nil
}

// Holdings returns the user's positive net positions without valuation,
// as shown by the sell form.
func (s *PortfolioService) Holdings(ctx context.Context, userID int64) ([]*domain.Holding, error) {
	return s.transactionRepo.HoldingsByUser(ctx, userID)
}

// History lists the user's transactions with filtering and pagination,
// plus the total matching count.
func (s *PortfolioService) History(ctx context.Context, userID int64, filter repository.TransactionFilter) ([]*domain.Transaction, int, error) {
	transactions, err := s.transactionRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.transactionRepo.CountByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
