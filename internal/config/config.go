// Package config loads service configuration from the environment.
// Carrier credentials are only ever supplied this way; none are
// embedded in source.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Carrier selection
	Carrier         string        `envconfig:"CARRIER" default:"shiprocket"`
	CarrierTokenTTL time.Duration `envconfig:"CARRIER_TOKEN_TTL" default:"216h"`

	// Shiprocket
	ShiprocketEmail    string `envconfig:"SHIPROCKET_EMAIL"`
	ShiprocketPassword string `envconfig:"SHIPROCKET_PASSWORD"`
	ShiprocketBaseURL  string `envconfig:"SHIPROCKET_BASE_URL" default:"https://apiv2.shiprocket.in/v1/external"`
	ShiprocketUseMock  bool   `envconfig:"SHIPROCKET_USE_MOCK" default:"false"`

	// Return facility: where returned items are shipped back to.
	ReturnName    string `envconfig:"RETURN_NAME"`
	ReturnAddress string `envconfig:"RETURN_ADDRESS"`
	ReturnCity    string `envconfig:"RETURN_CITY"`
	ReturnState   string `envconfig:"RETURN_STATE"`
	ReturnCountry string `envconfig:"RETURN_COUNTRY" default:"India"`
	ReturnPincode string `envconfig:"RETURN_PINCODE"`
	ReturnPhone   string `envconfig:"RETURN_PHONE"`
	ReturnEmail   string `envconfig:"RETURN_EMAIL"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.observability.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"arvan-shipgate"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !c.ShiprocketUseMock && (c.ShiprocketEmail == "" || c.ShiprocketPassword == "") {
		return fmt.Errorf("SHIPROCKET_EMAIL and SHIPROCKET_PASSWORD are required unless SHIPROCKET_USE_MOCK is set")
	}
	return nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("carrier.name", c.Carrier),
		attribute.Bool("carrier.mock", c.ShiprocketUseMock),
	}
}
