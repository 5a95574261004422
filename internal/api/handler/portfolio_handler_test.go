package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPortfolioValuation(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.quotes.setPrice("NFLX", "Netflix, Inc.", "500")
	env.quotes.setPrice("AAPL", "Apple Inc.", "200")
	session := env.register(t, "alice", "hunter2hunter2")

	if w := env.postForm(t, "/buy", url.Values{"symbol": {"NFLX"}, "shares": {"10"}}, session); w.Code != http.StatusSeeOther {
		t.Fatalf("buy NFLX failed with status %d", w.Code)
	}
	if w := env.postForm(t, "/buy", url.Values{"symbol": {"AAPL"}, "shares": {"5"}}, session); w.Code != http.StatusSeeOther {
		t.Fatalf("buy AAPL failed with status %d", w.Code)
	}

	// Value at new prices, not purchase prices
	env.quotes.setPrice("NFLX", "Netflix, Inc.", "550")

	portfolio := parsePortfolioResponse(t, env.get(t, "/", session))
	if len(portfolio.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(portfolio.Positions))
	}

	// 10000 - 10*500 - 5*200 = 4000
	if !portfolio.Cash.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected cash 4000, got %s", portfolio.Cash)
	}

	// Ordered by symbol: AAPL then NFLX
	aapl, nflx := portfolio.Positions[0], portfolio.Positions[1]
	if aapl.Symbol != "AAPL" || !aapl.Total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected AAPL total 1000, got %s for %s", aapl.Total, aapl.Symbol)
	}
	if nflx.Symbol != "NFLX" || !nflx.Price.Equal(decimal.NewFromInt(550)) || !nflx.Total.Equal(decimal.NewFromInt(5500)) {
		t.Errorf("expected NFLX 10 x 550 = 5500, got price %s total %s", nflx.Price, nflx.Total)
	}

	// 4000 + 1000 + 5500
	if !portfolio.Total.Equal(decimal.NewFromInt(10500)) {
		t.Errorf("expected grand total 10500, got %s", portfolio.Total)
	}
}

func TestPortfolioEmptyEqualsCash(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")

	portfolio := parsePortfolioResponse(t, env.get(t, "/", session))
	if len(portfolio.Positions) != 0 {
		t.Errorf("expected no positions, got %d", len(portfolio.Positions))
	}
	if !portfolio.Total.Equal(portfolio.Cash) {
		t.Errorf("expected total %s to equal cash %s", portfolio.Total, portfolio.Cash)
	}
	if !portfolio.Cash.Equal(decimal.RequireFromString(testStartingCash)) {
		t.Errorf("expected cash %s, got %s", testStartingCash, portfolio.Cash)
	}
}

func TestPortfolioExcludesSoldOutPositions(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.quotes.setPrice("NFLX", "Netflix, Inc.", "500")
	session := env.register(t, "alice", "hunter2hunter2")

	if w := env.postForm(t, "/buy", url.Values{"symbol": {"NFLX"}, "shares": {"3"}}, session); w.Code != http.StatusSeeOther {
		t.Fatalf("buy failed with status %d", w.Code)
	}
	if w := env.postForm(t, "/sell", url.Values{"symbol": {"NFLX"}, "shares": {"3"}}, session); w.Code != http.StatusSeeOther {
		t.Fatalf("sell failed with status %d", w.Code)
	}

	portfolio := parsePortfolioResponse(t, env.get(t, "/", session))
	if len(portfolio.Positions) != 0 {
		t.Errorf("expected sold-out position to disappear, got %+v", portfolio.Positions)
	}
	// Full round trip at the same price restores the starting balance
	if !portfolio.Cash.Equal(decimal.RequireFromString(testStartingCash)) {
		t.Errorf("expected cash back at %s, got %s", testStartingCash, portfolio.Cash)
	}
}

func seedHistory(t *testing.T, env *testEnv, session *http.Cookie) {
	t.Helper()

	env.quotes.setPrice("NFLX", "Netflix, Inc.", "500")
	env.quotes.setPrice("AAPL", "Apple Inc.", "200")
	env.quotes.setPrice("MSFT", "Microsoft Corporation", "300")

	for _, trade := range []struct {
		symbol, shares string
	}{
		{"NFLX", "2"},
		{"AAPL", "3"},
		{"MSFT", "1"},
	} {
		if w := env.postForm(t, "/buy", url.Values{"symbol": {trade.symbol}, "shares": {trade.shares}}, session); w.Code != http.StatusSeeOther {
			t.Fatalf("buy %s failed with status %d", trade.symbol, w.Code)
		}
	}
	if w := env.postForm(t, "/sell", url.Values{"symbol": {"AAPL"}, "shares": {"1"}}, session); w.Code != http.StatusSeeOther {
		t.Fatalf("sell AAPL failed with status %d", w.Code)
	}
}

func TestHistoryDefaultOrder(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")
	seedHistory(t, env, session)

	history := parseHistoryListResponse(t, env.get(t, "/history", session))
	if len(history.Items) != 4 {
		t.Fatalf("expected 4 history rows, got %d", len(history.Items))
	}

	// Oldest first
	expected := []struct {
		symbol string
		shares int64
	}{
		{"NFLX", 2},
		{"AAPL", 3},
		{"MSFT", 1},
		{"AAPL", -1},
	}
	for i, want := range expected {
		got := history.Items[i]
		if got.Symbol != want.symbol || got.Shares != want.shares {
			t.Errorf("row %d: expected %s %+d, got %s %+d", i, want.symbol, want.shares, got.Symbol, got.Shares)
		}
	}

	if history.Pagination.Total != 4 {
		t.Errorf("expected pagination total 4, got %d", history.Pagination.Total)
	}
}

func TestHistoryFiltering(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")
	seedHistory(t, env, session)

	history := parseHistoryListResponse(t, env.get(t, "/history?query=symbol|eq|AAPL", session))
	if len(history.Items) != 2 {
		t.Fatalf("expected 2 AAPL rows, got %d", len(history.Items))
	}
	for _, item := range history.Items {
		if item.Symbol != "AAPL" {
			t.Errorf("expected only AAPL rows, got %s", item.Symbol)
		}
	}

	// Negative shares mark sells
	history = parseHistoryListResponse(t, env.get(t, "/history?query="+url.QueryEscape("shares|lt|0"), session))
	if len(history.Items) != 1 || history.Items[0].Shares != -1 {
		t.Fatalf("expected single sell row, got %+v", history.Items)
	}
}

func TestHistoryOrdering(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")
	seedHistory(t, env, session)

	history := parseHistoryListResponse(t, env.get(t, "/history?order="+url.QueryEscape("id|desc"), session))
	if len(history.Items) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(history.Items))
	}
	for i := 1; i < len(history.Items); i++ {
		if history.Items[i].ID > history.Items[i-1].ID {
			t.Fatalf("expected descending ids, got %d before %d", history.Items[i-1].ID, history.Items[i].ID)
		}
	}
}

func TestHistoryPagination(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")
	seedHistory(t, env, session)

	history := parseHistoryListResponse(t, env.get(t, "/history?page=2&per_page=3", session))
	if len(history.Items) != 1 {
		t.Fatalf("expected 1 row on page 2, got %d", len(history.Items))
	}
	if history.Pagination.Total != 4 || history.Pagination.Page != 2 ||
		history.Pagination.PerPage != 3 || history.Pagination.TotalPages != 2 {
		t.Errorf("unexpected pagination metadata: %+v", history.Pagination)
	}
}

func TestHistoryRejectsUnknownField(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	session := env.register(t, "alice", "hunter2hunter2")

	w := env.get(t, "/history?query="+url.QueryEscape("user_id|eq|1"), session)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for disallowed field, got %d: %s", w.Code, w.Body.String())
	}

	w = env.get(t, "/history?order="+url.QueryEscape("price|asc"), session)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for disallowed order field, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHistoryIsPerUser(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	env.quotes.setPrice("NFLX", "Netflix, Inc.", "500")

	alice := env.register(t, "alice", "hunter2hunter2")
	bob := env.register(t, "bob", "correcthorse")

	if w := env.postForm(t, "/buy", url.Values{"symbol": {"NFLX"}, "shares": {"2"}}, alice); w.Code != http.StatusSeeOther {
		t.Fatalf("buy failed with status %d", w.Code)
	}

	history := parseHistoryListResponse(t, env.get(t, "/history", bob))
	if len(history.Items) != 0 {
		t.Errorf("expected empty history for other user, got %d rows", len(history.Items))
	}
}
