package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/martijn/papertrade/internal/api/dto"
	"github.com/martijn/papertrade/internal/api/middleware"
	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/service"
	"github.com/martijn/papertrade/internal/infrastructure/sqlite"
)

const testStartingCash = "10000.00"

// fakeQuoteLookup serves quotes from a fixed symbol table, standing in
// for the external price source.
type fakeQuoteLookup struct {
	quotes map[string]*domain.Quote
}

func newFakeQuoteLookup() *fakeQuoteLookup {
	return &fakeQuoteLookup{quotes: make(map[string]*domain.Quote)}
}

func (f *fakeQuoteLookup) setPrice(symbol, name, price string) {
	f.quotes[symbol] = &domain.Quote{
		Name:   name,
		Symbol: symbol,
		Price:  decimal.RequireFromString(price),
	}
}

func (f *fakeQuoteLookup) Lookup(_ context.Context, symbol string) (*domain.Quote, error) {
	quote, ok := f.quotes[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSymbol, symbol)
	}
	return quote, nil
}

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
	quotes *fakeQuoteLookup
}

// setupTestEnv creates a test environment with an in-memory SQLite
// database and the full route table, session middleware included.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	transactionRepo := sqlite.NewTransactionRepository(db)
	quotes := newFakeQuoteLookup()

	authService := service.NewAuthService(userRepo, "test-secret", "HS256", time.Hour, decimal.RequireFromString(testStartingCash))
	tradingService := service.NewTradingService(transactionRepo, quotes)
	portfolioService := service.NewPortfolioService(userRepo, transactionRepo, quotes)

	authHandler := NewAuthHandler(authService, time.Hour)
	portfolioHandler := NewPortfolioHandler(portfolioService)
	tradeHandler := NewTradeHandler(tradingService, portfolioService, userRepo)
	quoteHandler := NewQuoteHandler(quotes)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.POST("/register", authHandler.Register)

	sessionMiddleware := middleware.SessionMiddleware(authService)
	authed := router.Group("/")
	authed.Use(sessionMiddleware)
	{
		authed.GET("", portfolioHandler.Index)
		authed.GET("buy", tradeHandler.BuyForm)
		authed.POST("buy", tradeHandler.Buy)
		authed.GET("sell", tradeHandler.SellForm)
		authed.POST("sell", tradeHandler.Sell)
		authed.GET("history", portfolioHandler.History)
		authed.GET("quote", quoteHandler.Quote)
		authed.POST("quote", quoteHandler.Quote)
	}

	return &testEnv{
		db:     db,
		router: router,
		quotes: quotes,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// postForm performs a form-encoded POST, optionally with a session cookie
func (env *testEnv) postForm(t *testing.T, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// get performs a GET request, optionally with a session cookie
func (env *testEnv) get(t *testing.T, path string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if session != nil {
		req.AddCookie(session)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns the session cookie
func (env *testEnv) register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	w := env.postForm(t, "/register", url.Values{
		"username":     {username},
		"password":     {password},
		"confirmation": {password},
	}, nil)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("registration failed with status %d: %s", w.Code, w.Body.String())
	}

	return sessionCookie(t, w)
}

// sessionCookie extracts the session cookie from a response
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// parsePortfolioResponse parses the response body into PortfolioResponse
func parsePortfolioResponse(t *testing.T, w *httptest.ResponseRecorder) dto.PortfolioResponse {
	t.Helper()

	var resp dto.PortfolioResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseHistoryListResponse parses the response body into HistoryListResponse
func parseHistoryListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.HistoryListResponse {
	t.Helper()

	var resp dto.HistoryListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// cashBalance reads the current cash balance through the buy form endpoint
func (env *testEnv) cashBalance(t *testing.T, session *http.Cookie) decimal.Decimal {
	t.Helper()

	w := env.get(t, "/buy", session)
	if w.Code != http.StatusOK {
		t.Fatalf("failed to read cash balance: status %d: %s", w.Code, w.Body.String())
	}

	var resp dto.BuyFormResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse buy form response: %v", err)
	}
	return resp.Cash
}

// transactionCount counts ledger rows directly
func (env *testEnv) transactionCount(t *testing.T) int {
	t.Helper()

	var count int
	if err := env.db.Get(&count, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}
