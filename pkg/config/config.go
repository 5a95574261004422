package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SessionSecret string `mapstructure:"session_secret"`
	QuoteAPIURL   string `mapstructure:"quote_api_url"`

	// Optional quote source settings
	QuoteAPIKey      string `mapstructure:"quote_api_key"`
	QuoteCacheTTLMin int    `mapstructure:"quote_cache_ttl_minutes"`

	// Optional Redis quote cache; empty disables caching
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional session settings
	JWTAlgorithm    string `mapstructure:"jwt_algorithm"`
	SessionTTLHours int    `mapstructure:"session_ttl_hours"`

	// Optional trading settings
	StartingCash string `mapstructure:"starting_cash"`

	// Static paths
	ConfigPath string
	DBPath     string `mapstructure:"db_path"`
}

const (
	DefaultConfigPath       = "/etc/papertrade/config.yml"
	DefaultDBPath           = "/var/lib/papertrade/db.sqlite3"
	DefaultAPIHost          = "0.0.0.0"
	DefaultAPIPort          = 8460
	DefaultJWTAlgorithm     = "HS256"
	DefaultSessionTTLHours  = 24
	DefaultStartingCash     = "10000.00"
	DefaultQuoteCacheTTLMin = 5
)

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("api_host", DefaultAPIHost)
	viper.SetDefault("api_port", DefaultAPIPort)
	viper.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	viper.SetDefault("session_ttl_hours", DefaultSessionTTLHours)
	viper.SetDefault("starting_cash", DefaultStartingCash)
	viper.SetDefault("quote_cache_ttl_minutes", DefaultQuoteCacheTTLMin)
	viper.SetDefault("db_path", DefaultDBPath)

	// Allow environment variable overrides
	viper.AutomaticEnv()
	viper.SetEnvPrefix("PAPERTRADE")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}

	if c.QuoteAPIURL == "" {
		return fmt.Errorf("quote_api_url is required")
	}

	if _, err := decimal.NewFromString(c.StartingCash); err != nil {
		return fmt.Errorf("starting_cash is not a valid amount: %s", c.StartingCash)
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

// StartingCashAmount returns the validated starting balance
func (c *Config) StartingCashAmount() decimal.Decimal {
	amount, err := decimal.NewFromString(c.StartingCash)
	if err != nil {
		return decimal.RequireFromString(DefaultStartingCash)
	}
	return amount
}

func (c *Config) IsDevMode() bool {
	return os.Getenv("PAPERTRADE_DEV_MODE") == "1"
}
