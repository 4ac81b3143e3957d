// Package core provides the shared kernel for the storefront: logging,
// structured errors, configuration, and the durable state port with its
// in-memory and Redis-backed implementations.
//
// Configuration follows the functional-options pattern:
//
//	cfg, err := core.NewConfig(
//	    core.WithName("storefront"),
//	    core.WithCatalogPath("products.yaml"),
//	    core.WithStorageProvider("redis"),
//	    core.WithRedisURL("redis://localhost:6379"),
//	)
package core

import (
	"fmt"
	"time"
)

// Config holds all configuration for a storefront instance
type Config struct {
	// Name identifies this storefront in logs and telemetry
	Name string

	// CatalogPath points at the product catalog document. Empty means the
	// catalog is supplied programmatically.
	CatalogPath string

	Logging   LoggingConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Checkout  CheckoutConfig
	Telemetry TelemetryConfig
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string // debug, info, warn, error
}

// StorageConfig selects the durable state backend
type StorageConfig struct {
	Provider  string // "memory" or "redis"
	RedisURL  string
	Namespace string // key prefix for the redis backend
}

// AuthConfig controls the auth manager
type AuthConfig struct {
	// SimulatedLatency is the fixed pause applied to login and signup,
	// standing in for a network round trip. Zero disables the pause.
	SimulatedLatency time.Duration
}

// CheckoutConfig controls order composition
type CheckoutConfig struct {
	TaxRate               float64       // fraction of the subtotal, e.g. 0.18
	DeliveryFee           int64         // flat fee in currency units
	FreeDeliveryThreshold int64         // subtotal above which delivery is free
	SimulatedLatency      time.Duration // simulated payment processing pause
	DeliveryEstimate      time.Duration // added to the order time
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	Enabled  bool
	Endpoint string // OTLP gRPC endpoint; empty selects the stdout exporter
}

// Option is a function that modifies the configuration
type Option func(*Config) error

// NewConfig creates a configuration with defaults, then applies options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the standard storefront defaults
func DefaultConfig() *Config {
	return &Config{
		Name: "storefront",
		Logging: LoggingConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Provider:  "memory",
			Namespace: "storefront",
		},
		Auth: AuthConfig{
			SimulatedLatency: time.Second,
		},
		Checkout: CheckoutConfig{
			TaxRate:               0.18,
			DeliveryFee:           50,
			FreeDeliveryThreshold: 500,
			SimulatedLatency:      2 * time.Second,
			DeliveryEstimate:      45 * time.Minute,
		},
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required: %w", ErrMissingConfiguration)
	}

	switch c.Storage.Provider {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("redis storage requires a redis URL: %w", ErrMissingConfiguration)
		}
	default:
		return fmt.Errorf("unknown storage provider %q: %w", c.Storage.Provider, ErrInvalidConfiguration)
	}

	if c.Checkout.TaxRate < 0 {
		return fmt.Errorf("tax rate must not be negative: %w", ErrInvalidConfiguration)
	}
	if c.Checkout.DeliveryFee < 0 || c.Checkout.FreeDeliveryThreshold < 0 {
		return fmt.Errorf("delivery policy must not be negative: %w", ErrInvalidConfiguration)
	}
	if c.Auth.SimulatedLatency < 0 || c.Checkout.SimulatedLatency < 0 {
		return fmt.Errorf("simulated latency must not be negative: %w", ErrInvalidConfiguration)
	}
	return nil
}

// WithName sets the storefront name
func WithName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("name cannot be empty: %w", ErrInvalidConfiguration)
		}
		c.Name = name
		return nil
	}
}

// WithCatalogPath sets the product catalog document path
func WithCatalogPath(path string) Option {
	return func(c *Config) error {
		c.CatalogPath = path
		return nil
	}
}

// WithLogLevel sets the log level (debug, info, warn, error)
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithStorageProvider selects the durable state backend
func WithStorageProvider(provider string) Option {
	return func(c *Config) error {
		c.Storage.Provider = provider
		return nil
	}
}

// WithRedisURL sets the Redis connection URL and switches storage to redis
func WithRedisURL(url string) Option {
	return func(c *Config) error {
		c.Storage.RedisURL = url
		c.Storage.Provider = "redis"
		return nil
	}
}

// WithStorageNamespace sets the key prefix used by the redis backend
func WithStorageNamespace(ns string) Option {
	return func(c *Config) error {
		c.Storage.Namespace = ns
		return nil
	}
}

// WithAuthLatency sets the simulated login/signup delay
func WithAuthLatency(d time.Duration) Option {
	return func(c *Config) error {
		c.Auth.SimulatedLatency = d
		return nil
	}
}

// WithProcessingLatency sets the simulated payment processing delay
func WithProcessingLatency(d time.Duration) Option {
	return func(c *Config) error {
		c.Checkout.SimulatedLatency = d
		return nil
	}
}

// WithTaxRate sets the tax fraction applied to the subtotal
func WithTaxRate(rate float64) Option {
	return func(c *Config) error {
		c.Checkout.TaxRate = rate
		return nil
	}
}

// WithDeliveryPolicy sets the flat delivery fee and the free-delivery threshold
func WithDeliveryPolicy(fee, freeAbove int64) Option {
	return func(c *Config) error {
		c.Checkout.DeliveryFee = fee
		c.Checkout.FreeDeliveryThreshold = freeAbove
		return nil
	}
}

// WithDeliveryEstimate sets how far ahead of the order time delivery is promised
func WithDeliveryEstimate(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("delivery estimate must be positive: %w", ErrInvalidConfiguration)
		}
		c.Checkout.DeliveryEstimate = d
		return nil
	}
}

// WithTelemetry enables tracing and metrics. An empty endpoint selects the
// stdout exporter; otherwise spans are shipped to the OTLP gRPC endpoint.
func WithTelemetry(enabled bool, endpoint string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = enabled
		c.Telemetry.Endpoint = endpoint
		return nil
	}
}
