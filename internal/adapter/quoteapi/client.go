// Package quoteapi implements quote lookup against an external HTTP
// price source. The source is treated as a black box: symbol in,
// name/symbol/price out, or a not-found signal.
package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/service"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ service.QuoteLookup = (*Client)(nil)

// quoteResponse is the wire format of the price source
type quoteResponse struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Lookup fetches the current quote for a symbol. Unknown symbols map to
// domain.ErrUnknownSymbol; transport and decode failures are returned
// as-is for the caller to surface.
func (c *Client) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, domain.ErrUnknownSymbol
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSymbol, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned %d for %s", resp.StatusCode, symbol)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}

	// Some sources answer 200 with an empty object for unknown symbols
	if body.Symbol == "" || body.Price == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSymbol, symbol)
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote price %q: %w", body.Price, err)
	}

	return &domain.Quote{
		Name:   body.Name,
		Symbol: strings.ToUpper(body.Symbol),
		Price:  price,
	}, nil
}
