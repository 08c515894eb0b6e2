// Package config loads storefront settings from STOREFRONT_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/kelseyhightower/envconfig"
)

const Prefix = "STOREFRONT"

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" default:"http://localhost:9090"`
	HTTPPort           string        `envconfig:"HTTP_PORT" default:"8080"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	MaxRequestBodySize int64         `envconfig:"MAX_REQUEST_BODY_SIZE" default:"1048576"`
	AddedMarkDuration  time.Duration `envconfig:"ADDED_MARK_DURATION" default:"2s"`

	MaxSessions    int           `envconfig:"MAX_SESSIONS" default:"10000"`
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`

	RedisAddr  string        `envconfig:"REDIS_ADDR"`
	CatalogTTL time.Duration `envconfig:"CATALOG_TTL" default:"1m"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"storefront-events"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT"`

	Customer CustomerConfig `envconfig:"CUSTOMER"`
}

// CustomerConfig holds the fixed customer sent with every order.
type CustomerConfig struct {
	Name    string `envconfig:"NAME" default:"Alice Smith"`
	Email   string `envconfig:"EMAIL" default:"alice@example.com"`
	Address string `envconfig:"ADDRESS" default:"123 Main Street"`
	Phone   string `envconfig:"PHONE" default:"+111111111"`
}

func (c CustomerConfig) Customer() domain.Customer {
	return domain.Customer{Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("invalid config: base url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("invalid config: max request body size must be positive, got %d", c.MaxRequestBodySize)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("invalid config: max sessions must be positive, got %d", c.MaxSessions)
	}
	return nil
}
