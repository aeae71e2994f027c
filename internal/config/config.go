// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration

	// CreditPeriod is the grace window before an unpaid order marks a
	// customer's credit status overdue.
	CreditPeriod time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
// Environment variables take precedence over .env entries.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         8080,
		DBPath:       "./data/rooherbals.db",
		TokenTTL:     24 * time.Hour,
		CreditPeriod: 30 * 24 * time.Hour,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("CREDIT_PERIOD_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CREDIT_PERIOD_DAYS %q: %w", v, err)
		}
		cfg.CreditPeriod = time.Duration(days) * 24 * time.Hour
	}

	return cfg, nil
}
