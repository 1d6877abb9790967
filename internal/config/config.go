// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreDriver selects where booked trips are persisted: "file" (default)
	// or "postgres".
	StoreDriver string

	// TripsFile is the line-oriented trip store used by the file driver.
	// Defaults to "trips.txt".
	TripsFile string

	// DatabaseURL is the Postgres connection string.
	// Required only when StoreDriver is "postgres".
	DatabaseURL string

	// InitialBudget is the wallet balance at startup. Defaults to 1500.
	InitialBudget decimal.Decimal

	// FallbackBudget is the budget assigned to trips reloaded from storage,
	// which do not persist their own. Defaults to 1500.
	FallbackBudget decimal.Decimal

	// CatalogFile is an optional YAML catalog replacing the built-in one.
	CatalogFile string

	// MaxBodyBytes caps request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every required variable that is not set and every
// value that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreDriver: getEnv("STORE_DRIVER", StoreFile),
		TripsFile:   getEnv("TRIPS_FILE", "trips.txt"),
		CatalogFile: os.Getenv("CATALOG_FILE"),
	}

	var missing, invalid []string

	switch cfg.StoreDriver {
	case StoreFile:
	case StorePostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, "STORE_DRIVER (want file or postgres)")
	}

	var err error
	if cfg.InitialBudget, err = getDecimal("INITIAL_BUDGET", "1500"); err != nil {
		invalid = append(invalid, "INITIAL_BUDGET")
	}
	if cfg.FallbackBudget, err = getDecimal("FALLBACK_BUDGET", "1500"); err != nil {
		invalid = append(invalid, "FALLBACK_BUDGET")
	}
	cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config.Load: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDecimal parses a non-negative amount from key, or fallback when unset.
func getDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
