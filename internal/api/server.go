package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/api/handler"
	"github.com/martijn/papertrade/internal/api/middleware"
	"github.com/martijn/papertrade/internal/core/repository"
	"github.com/martijn/papertrade/internal/core/service"
	"github.com/martijn/papertrade/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	tradingService *service.TradingService,
	portfolioService *service.PortfolioService,
	quotes service.QuoteLookup,
	userRepo repository.UserRepository,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.NoCacheMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService)
	tradeHandler := handler.NewTradeHandler(tradingService, portfolioService, userRepo)
	quoteHandler := handler.NewQuoteHandler(quotes)

	// Public routes (no session required)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/register", authHandler.LoginForm)
	router.POST("/register", authHandler.Register)

	// Protected routes (session required)
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

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		fmt.Printf("Starting HTTPS server on %s\n", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	fmt.Printf("Starting HTTP server on %s\n", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
