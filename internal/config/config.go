// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, store credentials, reply pacing, and feature flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Features holds the global feature flags. The struct is populated once at
// startup and passed by value into the router and card composer so each
// flag combination is testable in isolation.
type Features struct {
	ThemedCards    bool // accent colors and background fills on course cards
	FuzzySearch    bool // bidirectional containment matching (off = plain substring)
	CategorySearch bool // "หมวดหมู่ <term>" prefix queries
	QuickReply     bool // suggestion buttons on the fallback reply
}

// StoreCredential is the resolved document-store connection credential.
// It can come from an explicit JSON blob or from a plain connection URI;
// which one is a startup concern only, the rest of the app sees this struct.
type StoreCredential struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// Config holds all application configuration
type Config struct {
	// LINE Bot Configuration
	LineChannelToken  string // empty = degraded mode, replies become no-ops
	LineChannelSecret string // empty = webhook signature validation skipped

	// Document Store Configuration
	Store StoreCredential

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Sentry Configuration
	SentryDSN string

	// Reply Configuration
	StoreTimeout time.Duration // per-fetch deadline on catalog reads
	ReplyRateRPS float64       // global outbound reply rate (token bucket)

	// Feature flags
	Features Features
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	store, err := resolveStoreCredential()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LineChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),

		Store: store,

		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		StoreTimeout: getDurationEnv("STORE_TIMEOUT", 10*time.Second),
		ReplyRateRPS: getFloatEnv("REPLY_RATE_RPS", 100.0),

		Features: Features{
			ThemedCards:    getBoolEnv("FEATURE_THEMED_CARDS", true),
			FuzzySearch:    getBoolEnv("FEATURE_FUZZY_SEARCH", true),
			CategorySearch: getBoolEnv("FEATURE_CATEGORY_SEARCH", true),
			QuickReply:     getBoolEnv("FEATURE_QUICK_REPLY", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// resolveStoreCredential resolves the document-store credential.
// MONGODB_CREDENTIALS_JSON (an explicit JSON object) takes precedence over
// the plain MONGODB_URI / MONGODB_DATABASE pair. Missing both is fatal:
// nothing downstream is meaningful without the catalog store.
func resolveStoreCredential() (StoreCredential, error) {
	if raw := os.Getenv("MONGODB_CREDENTIALS_JSON"); raw != "" {
		var cred StoreCredential
		if err := json.Unmarshal([]byte(raw), &cred); err != nil {
			return StoreCredential{}, fmt.Errorf("parse MONGODB_CREDENTIALS_JSON: %w", err)
		}
		if cred.Database == "" {
			cred.Database = getEnv("MONGODB_DATABASE", "linebot")
		}
		return cred, nil
	}

	return StoreCredential{
		URI:      getEnv("MONGODB_URI", ""),
		Database: getEnv("MONGODB_DATABASE", "linebot"),
	}, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Store.URI == "" {
		errs = append(errs, errors.New("MONGODB_URI or MONGODB_CREDENTIALS_JSON is required"))
	}
	if c.Store.Database == "" {
		errs = append(errs, errors.New("MONGODB_DATABASE is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, fmt.Errorf("STORE_TIMEOUT must be positive, got %v", c.StoreTimeout))
	}
	if c.ReplyRateRPS <= 0 {
		errs = append(errs, fmt.Errorf("REPLY_RATE_RPS must be positive, got %v", c.ReplyRateRPS))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasChannelToken reports whether outbound replies can actually be sent.
// When false the process runs in degraded mode and replies are swallowed.
func (c *Config) HasChannelToken() bool {
	return c.LineChannelToken != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
