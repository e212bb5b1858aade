// Package config reads process configuration from the environment, once, at
// startup. The resulting struct is immutable for the life of the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the auth service.
type Config struct {
	// Secret signs and verifies session tokens. Its absence is a fatal
	// startup condition, never a per-request error.
	Secret string

	// DatabaseDSN is the PostgreSQL DSN (pgx). Empty selects the in-memory
	// store, for local development only.
	DatabaseDSN string

	// HTTPAddr is the bind address for the HTTP endpoint.
	HTTPAddr string

	// SessionTTL drives both the token expiry and the cookie Max-Age.
	SessionTTL time.Duration

	// CookieSecure toggles the cookie's Secure attribute. Disable only for
	// plain-HTTP local development.
	CookieSecure bool

	// StoreTimeout bounds each store round trip.
	StoreTimeout time.Duration

	// HashWorkers caps concurrent password derivations. Zero means one per
	// CPU.
	HashWorkers int
}

// Load builds a Config from the environment. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		Secret:       getEnv("AUTH_SECRET", ""),
		DatabaseDSN:  getEnv("DATABASE_DSN", ""),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		SessionTTL:   getEnvAsDuration("SESSION_TTL", time.Hour),
		CookieSecure: getEnvAsBool("COOKIE_SECURE", true),
		StoreTimeout: getEnvAsDuration("STORE_TIMEOUT", 3*time.Second),
		HashWorkers:  getEnvAsInt("HASH_WORKERS", 0),
	}

	if cfg.Secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
