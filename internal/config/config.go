package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// WebPort is the port the governance HTTP surface listens on.
	WebPort string

	// TickInterval is the wall-clock duration of one engine tick. The
	// 150-tick timelock works out to five minutes at the 2s default.
	TickInterval time.Duration

	// StrategyBudget is the per-invocation compute budget for attached
	// fee strategies, in budget units.
	StrategyBudget uint64

	// DBHost, DBPort, DBUser, DBPassword, DBName, DBSSLMode configure the
	// PostgreSQL connection for governance state persistence.
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
)

// LoadConfig loads configuration from environment variables and sets the global config vars.
// Database credentials are required; the rest have working defaults.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error

	WebPort = getEnvWithDefault("WEB_PORT", "8080")

	tickMillis, err := getEnvAsUint64WithDefault("TICK_INTERVAL_MS", 2000)
	if err != nil {
		return err
	}
	if tickMillis == 0 {
		return errors.New("TICK_INTERVAL_MS must be positive")
	}
	TickInterval = time.Duration(tickMillis) * time.Millisecond

	StrategyBudget, err = getEnvAsUint64WithDefault("STRATEGY_BUDGET", 100_000)
	if err != nil {
		return err
	}

	DBHost = getEnvWithDefault("DB_HOST", "localhost")
	DBPort, err = getEnvAsIntWithDefault("DB_PORT", 5432)
	if err != nil {
		return err
	}
	DBUser, err = getEnv("DB_USER")
	if err != nil {
		return err
	}
	DBPassword = getEnvWithDefault("DB_PASSWORD", "")
	DBName, err = getEnv("DB_NAME")
	if err != nil {
		return err
	}
	DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	log.Debug().
		Str("WebPort", WebPort).
		Dur("TickInterval", TickInterval).
		Uint64("StrategyBudget", StrategyBudget).
		Str("DBHost", DBHost).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvWithDefault retrieves a string environment variable, falling back to
// the given default when unset.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsUint64WithDefault retrieves an environment variable as a uint64,
// falling back to the given default when unset. Returns error if invalid.
func getEnvAsUint64WithDefault(key string, defaultValue uint64) (uint64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid uint64, got: " + valueStr)
	}
	return value, nil
}

// getEnvAsIntWithDefault retrieves an environment variable as an int,
// falling back to the given default when unset. Returns error if invalid.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid int, got: " + valueStr)
	}
	return value, nil
}
