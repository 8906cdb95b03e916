package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// LogLevel controls zerolog verbosity ("debug", "info", "warn", "error").
	LogLevel string

	// PoolTokens is the ordered token set the demo pool is constructed with.
	PoolTokens []string

	// WebPort is the port for the read-only dashboard. Empty disables it.
	WebPort string

	// PersistenceEnabled reports whether snapshot persistence is configured.
	// It is true only when IPOOL_DB_HOST is set.
	PersistenceEnabled bool
)

// LoadConfig loads configuration from environment variables and sets the
// global config vars. All settings have defaults; only the database block is
// all-or-nothing once IPOOL_DB_HOST is present.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	LogLevel = getEnvOrDefault("IPOOL_LOG_LEVEL", "info")
	WebPort = getEnvOrDefault("IPOOL_WEB_PORT", "")

	tokenList := getEnvOrDefault("IPOOL_TOKENS", "X,Y,Z")
	PoolTokens = nil
	for _, symbol := range strings.Split(tokenList, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		PoolTokens = append(PoolTokens, symbol)
	}
	if len(PoolTokens) < 2 {
		return errors.New("IPOOL_TOKENS must list at least two token symbols")
	}

	PersistenceEnabled = false
	if _, exists := os.LookupEnv("IPOOL_DB_HOST"); exists {
		PersistenceEnabled = true
		if err := loadDatabaseConfig(); err != nil {
			return err
		}
	}

	log.Debug().
		Strs("PoolTokens", PoolTokens).
		Str("WebPort", WebPort).
		Bool("PersistenceEnabled", PersistenceEnabled).
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

// getEnvOrDefault retrieves a string environment variable with a fallback.
func getEnvOrDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an int. Returns error if not set or invalid.
func getEnvAsInt(key string) (int, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid int, got: " + valueStr)
	}
	return value, nil
}
