package quoteapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/martijn/papertrade/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, NewClient(server.URL, "test-key", 5*time.Second)
}

func TestLookupParsesQuote(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if symbol := r.URL.Query().Get("symbol"); symbol != "NFLX" {
			t.Errorf("expected symbol NFLX, got %q", symbol)
		}
		if key := r.URL.Query().Get("apikey"); key != "test-key" {
			t.Errorf("expected apikey test-key, got %q", key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "Netflix, Inc.", "symbol": "NFLX", "price": "512.34"}`))
	})

	quote, err := client.Lookup(context.Background(), "nflx")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if quote.Symbol != "NFLX" || quote.Name != "Netflix, Inc." {
		t.Errorf("unexpected quote identity: %s / %s", quote.Symbol, quote.Name)
	}
	if !quote.Price.Equal(decimal.RequireFromString("512.34")) {
		t.Errorf("expected price 512.34, got %s", quote.Price)
	}
}

func TestLookupNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestLookupEmptyBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	_, err := client.Lookup(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol for empty payload, got %v", err)
	}
}

func TestLookupServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Lookup(context.Background(), "NFLX")
	if err == nil {
		t.Fatal("expected error for upstream failure")
	}
	if errors.Is(err, domain.ErrUnknownSymbol) {
		t.Error("upstream failure must not look like an unknown symbol")
	}
}

func TestLookupBlankSymbol(t *testing.T) {
	client := NewClient("http://localhost:0", "test-key", time.Second)

	_, err := client.Lookup(context.Background(), "   ")
	if !errors.Is(err, domain.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol for blank symbol, got %v", err)
	}
}

func TestLookupBadPrice(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "Netflix, Inc.", "symbol": "NFLX", "price": "not-a-number"}`))
	})

	_, err := client.Lookup(context.Background(), "NFLX")
	if err == nil {
		t.Fatal("expected error for unparseable price")
	}
}
