package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port           string `mapstructure:"SERVER_PORT"`
	Host           string `mapstructure:"SERVER_HOST"`
	Env            string `mapstructure:"ENV"`
	ReadTimeout    string `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout   string `mapstructure:"SERVER_WRITE_TIMEOUT"`
	AllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLife  string `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	AllocationStrategy  string `mapstructure:"ALLOCATION_STRATEGY"`
	OverpaymentPolicy   string `mapstructure:"OVERPAYMENT_POLICY"`
	InvoiceDueDay       int    `mapstructure:"INVOICE_DUE_DAY"`
	StatsCacheTTL       string `mapstructure:"STATS_CACHE_TTL"`
	TrendMonths         int    `mapstructure:"TREND_MONTHS"`
	TopHousesLimit      int    `mapstructure:"TOP_HOUSES_LIMIT"`
	RecentPaymentsLimit int    `mapstructure:"RECENT_PAYMENTS_LIMIT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Allocation strategies and overpayment policies
const (
	StrategySingleMonth = "single"
	StrategySpread      = "spread"

	OverpaymentCredit = "credit"
	OverpaymentReject = "reject"
)

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("ALLOCATION_STRATEGY", StrategySingleMonth)
	viper.SetDefault("OVERPAYMENT_POLICY", OverpaymentCredit)
	viper.SetDefault("INVOICE_DUE_DAY", 5)
	viper.SetDefault("STATS_CACHE_TTL", "60s")
	viper.SetDefault("TREND_MONTHS", 6)
	viper.SetDefault("TOP_HOUSES_LIMIT", 3)
	viper.SetDefault("RECENT_PAYMENTS_LIMIT", 10)
	viper.SetDefault("SCHEDULER_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Business.AllocationStrategy {
	case StrategySingleMonth, StrategySpread:
	default:
		return fmt.Errorf("ALLOCATION_STRATEGY must be %q or %q", StrategySingleMonth, StrategySpread)
	}

	switch c.Business.OverpaymentPolicy {
	case OverpaymentCredit, OverpaymentReject:
	default:
		return fmt.Errorf("OVERPAYMENT_POLICY must be %q or %q", OverpaymentCredit, OverpaymentReject)
	}

	if c.Business.InvoiceDueDay < 1 || c.Business.InvoiceDueDay > 31 {
		return fmt.Errorf("INVOICE_DUE_DAY must be between 1 and 31")
	}

	if c.Business.TrendMonths <= 0 {
		return fmt.Errorf("TREND_MONTHS must be greater than 0")
	}

	// Validate durations
	if _, err := time.ParseDuration(c.Business.StatsCacheTTL); err != nil {
		return fmt.Errorf("STATS_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Database.ConnMaxLife); err != nil {
		return fmt.Errorf("DATABASE_CONN_MAX_LIFETIME must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetAllowedOrigins returns the configured CORS origins as a slice
func (c *Config) GetAllowedOrigins() []string {
	parts := strings.Split(c.Server.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// GetStatsCacheTTL returns the stats cache TTL as duration
func (c *Config) GetStatsCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.StatsCacheTTL)
	return ttl
}

// GetReadTimeout returns the server read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// GetWriteTimeout returns the server write timeout as duration
func (c *Config) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// GetConnMaxLifetime returns the database connection max lifetime as duration
func (c *Config) GetConnMaxLifetime() time.Duration {
	d, _ := time.ParseDuration(c.Database.ConnMaxLife)
	return d
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Health.Timeout)
	return d
}
