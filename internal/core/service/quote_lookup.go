package service

import (
	"context"

	"github.com/martijn/papertrade/internal/core/domain"
)

// QuoteLookup resolves a ticker symbol to its current quote. The symbol
// is treated case-insensitively by implementations. Returns
// domain.ErrUnknownSymbol when the price source does not know the symbol.
type QuoteLookup interface {
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}
