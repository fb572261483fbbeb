// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/models"
)

// Defaults for optional configuration values.
const (
	DefaultRatesAPIBaseURL  = "https://freecurrencyapi.net"
	DefaultEarliestRateDate = "1999-01-01"
	DefaultHTTPTimeout      = 10 * time.Second
)

// Telemetry modes accepted by TELEMETRY_MODE.
const (
	TelemetryOff      = "off"
	TelemetryStdout   = "stdout"
	TelemetryOTLPHTTP = "otlp-http"
	TelemetryOTLPGRPC = "otlp-grpc"
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken string
	RatesAPIKey      string
	RatesAPIBaseURL  string
	BaseCurrency     string
	EarliestRateDate time.Time
	HTTPTimeout      time.Duration
	LogLevel         string
	LogJSON          bool
	TelemetryMode    string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RatesAPIKey:      os.Getenv("RATES_API_KEY"),
		RatesAPIBaseURL:  DefaultRatesAPIBaseURL,
		BaseCurrency:     models.DefaultBaseCurrency,
		HTTPTimeout:      DefaultHTTPTimeout,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		TelemetryMode:    TelemetryOff,
	}

	if baseURL := strings.TrimSpace(os.Getenv("RATES_API_BASE_URL")); baseURL != "" {
		cfg.RatesAPIBaseURL = strings.TrimRight(baseURL, "/")
	}

	if base := models.NormalizeCurrencyCode(os.Getenv("BASE_CURRENCY")); base != "" {
		cfg.BaseCurrency = base
	}

	earliest := DefaultEarliestRateDate
	if v := strings.TrimSpace(os.Getenv("EARLIEST_RATE_DATE")); v != "" {
		earliest = v
	}
	floor, err := time.Parse("2006-01-02", earliest)
	if err != nil {
		return nil, fmt.Errorf("invalid EARLIEST_RATE_DATE %q: %w", earliest, err)
	}
	cfg.EarliestRateDate = floor

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("LOG_JSON"); v != "" {
		if jsonOut, err := strconv.ParseBool(v); err == nil {
			cfg.LogJSON = jsonOut
		}
	}

	if mode := strings.TrimSpace(os.Getenv("TELEMETRY_MODE")); mode != "" {
		cfg.TelemetryMode = mode
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.RatesAPIKey == "" {
		errs = append(errs, "RATES_API_KEY is required")
	}

	if !models.IsSupportedCurrency(c.BaseCurrency) {
		errs = append(errs, fmt.Sprintf("BASE_CURRENCY %q is not a supported currency", c.BaseCurrency))
	}

	switch c.TelemetryMode {
	case TelemetryOff, TelemetryStdout, TelemetryOTLPHTTP, TelemetryOTLPGRPC:
	default:
		errs = append(errs, fmt.Sprintf("TELEMETRY_MODE %q is not one of off, stdout, otlp-http, otlp-grpc", c.TelemetryMode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
