package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the settings for the commerce API and the dashboard service.
type Config struct {
	AppName string
	Env     string
	Port    string

	JWTSecret string
	JWTTTL    time.Duration

	StoreDriver string
	DatabaseDSN string

	CatalogSize  int
	CatalogSeed  int64
	SeedUsers    int
	SeedPassword string

	SimulatedLatency bool

	RabbitMQURL      string
	OrderEventsQueue string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	AnalyticsCacheTTL time.Duration

	HTTPLogEnabled     bool
	CORSAllowedOrigins string
	LogLevel           string

	Dashboard DashboardConfig
}

// DashboardConfig holds settings for the dashboard service.
type DashboardConfig struct {
	Port         string
	APIURL       string
	PollInterval time.Duration
	MinDelay     time.Duration
	MaxDelay     time.Duration
}

// SetDefaults registers every key with its default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "loadlab")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":3001")

	v.SetDefault("JWT_SECRET", "your-secret-key")
	v.SetDefault("JWT_TTL", 24*time.Hour)

	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")

	v.SetDefault("CATALOG_SIZE", 1000)
	v.SetDefault("CATALOG_SEED", 0)
	v.SetDefault("SEED_USERS", 100)
	v.SetDefault("SEED_PASSWORD", "password123")

	v.SetDefault("SIMULATED_LATENCY_ENABLED", true)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ORDER_EVENTS_QUEUE", "order_queue")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ANALYTICS_CACHE_TTL", time.Duration(0))

	v.SetDefault("HTTP_LOG_ENABLED", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DASHBOARD_PORT", ":3000")
	v.SetDefault("API_URL", "http://localhost:3001")
	v.SetDefault("POLL_INTERVAL", 5*time.Second)
	v.SetDefault("TEST_MIN_DELAY", 3*time.Second)
	v.SetDefault("TEST_MAX_DELAY", 8*time.Second)
}

// Load reads an optional .env file and config.yaml, then environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName: v.GetString("APP_NAME"),
		Env:     v.GetString("APP_ENV"),
		Port:    v.GetString("APP_PORT"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),

		CatalogSize:  v.GetInt("CATALOG_SIZE"),
		CatalogSeed:  v.GetInt64("CATALOG_SEED"),
		SeedUsers:    v.GetInt("SEED_USERS"),
		SeedPassword: v.GetString("SEED_PASSWORD"),

		SimulatedLatency: v.GetBool("SIMULATED_LATENCY_ENABLED"),

		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		OrderEventsQueue: v.GetString("ORDER_EVENTS_QUEUE"),

		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		AnalyticsCacheTTL: v.GetDuration("ANALYTICS_CACHE_TTL"),

		HTTPLogEnabled:     v.GetBool("HTTP_LOG_ENABLED"),
		CORSAllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:           v.GetString("LOG_LEVEL"),

		Dashboard: DashboardConfig{
			Port:         v.GetString("DASHBOARD_PORT"),
			APIURL:       strings.TrimRight(v.GetString("API_URL"), "/"),
			PollInterval: v.GetDuration("POLL_INTERVAL"),
			MinDelay:     v.GetDuration("TEST_MIN_DELAY"),
			MaxDelay:     v.GetDuration("TEST_MAX_DELAY"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.CatalogSize < 0 || c.SeedUsers < 0 {
		return errors.New("CATALOG_SIZE and SEED_USERS must not be negative")
	}
	if c.Dashboard.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.Dashboard.PollInterval)
	}
	if c.Dashboard.MaxDelay < c.Dashboard.MinDelay {
		return fmt.Errorf("TEST_MAX_DELAY (%s) is below TEST_MIN_DELAY (%s)", c.Dashboard.MaxDelay, c.Dashboard.MinDelay)
	}
	return nil
}

// CORSOrigins returns the allowed origins in the comma-separated form fiber's cors expects.
func (c *Config) CORSOrigins() string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	if len(res) == 0 {
		return "*"
	}
	return strings.Join(res, ",")
}
