package cli

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/martijn/papertrade/internal/adapter/quoteapi"
	"github.com/martijn/papertrade/internal/core/repository"
	"github.com/martijn/papertrade/internal/core/service"
	"github.com/martijn/papertrade/internal/infrastructure/sqlite"
	"github.com/martijn/papertrade/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "Papertrade - simulated stock trading service",
	Long: `Papertrade is a paper-trading service backed by an append-only
transaction ledger.

It provides:
- User registration and cookie-session login
- Buying and selling shares at live looked-up prices
- Portfolio valuation recomputed from the ledger
- Full transaction history with filtering
- Optional Redis caching of quotes`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/papertrade/config.yml)")
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	transactionRepo := sqlite.NewTransactionRepository(db)

	// Initialize quote lookup, optionally behind a Redis cache
	var quotes service.QuoteLookup = quoteapi.NewClient(cfg.QuoteAPIURL, cfg.QuoteAPIKey, 10*time.Second)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		quotes = quoteapi.NewCachedLookup(quotes, rdb, time.Duration(cfg.QuoteCacheTTLMin)*time.Minute)
	}

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.JWTAlgorithm, sessionTTL, cfg.StartingCashAmount())
	tradingService := service.NewTradingService(transactionRepo, quotes)
	portfolioService := service.NewPortfolioService(userRepo, transactionRepo, quotes)

	return &Services{
		DB:               db,
		UserRepo:         userRepo,
		TransactionRepo:  transactionRepo,
		Quotes:           quotes,
		AuthService:      authService,
		TradingService:   tradingService,
		PortfolioService: portfolioService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB               *sqlite.DB
	UserRepo         repository.UserRepository
	TransactionRepo  repository.TransactionRepository
	Quotes           service.QuoteLookup
	AuthService      *service.AuthService
	TradingService   *service.TradingService
	PortfolioService *service.PortfolioService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
