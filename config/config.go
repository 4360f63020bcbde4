package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"deriverse-dashboard/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Synthesis Parameters
	Year        int
	MonthIndex  int // 0-based month within Year
	TotalTrades int
	Seed        uint32

	// Account
	StartingEquity float64

	// Open-status policy: the most recent max(MinOpenTrades, OpenTradeShare*N)
	// trades of a batch are marked OPEN.
	MinOpenTrades  int
	OpenTradeShare float64

	// Database
	DBPath string

	// HTTP
	ListenAddr string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.Year, err = getEnvAsIntRequired("PERIOD_YEAR", 2023)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PERIOD_YEAR: %v", err))
	} else if cfg.Year < 2000 || cfg.Year > 2100 {
		errs = append(errs, "PERIOD_YEAR must be between 2000 and 2100")
	}

	cfg.MonthIndex, err = getEnvAsIntRequired("PERIOD_MONTH_INDEX", 9)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PERIOD_MONTH_INDEX: %v", err))
	} else if cfg.MonthIndex < 0 || cfg.MonthIndex > 11 {
		errs = append(errs, "PERIOD_MONTH_INDEX must be between 0 and 11")
	}

	cfg.TotalTrades, err = getEnvAsIntRequired("TOTAL_TRADES", 142)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TOTAL_TRADES: %v", err))
	} else if cfg.TotalTrades < 0 {
		errs = append(errs, "TOTAL_TRADES cannot be negative")
	}

	seed, err := getEnvAsIntRequired("SEED", 20231114)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SEED: %v", err))
	} else if seed < 0 {
		errs = append(errs, "SEED cannot be negative")
	} else {
		cfg.Seed = uint32(seed)
	}

	cfg.StartingEquity, err = getEnvAsFloatRequired("STARTING_EQUITY", 35000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid STARTING_EQUITY: %v", err))
	} else if cfg.StartingEquity <= 0 {
		errs = append(errs, "STARTING_EQUITY must be positive")
	}

	cfg.MinOpenTrades = getEnvAsInt("MIN_OPEN_TRADES", 3)
	if cfg.MinOpenTrades < 0 {
		errs = append(errs, "MIN_OPEN_TRADES cannot be negative")
	}

	cfg.OpenTradeShare = getEnvAsFloat("OPEN_TRADE_SHARE", 0.08)
	if cfg.OpenTradeShare < 0 || cfg.OpenTradeShare >= 1 {
		errs = append(errs, "OPEN_TRADE_SHARE must be in [0, 1)")
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/deriverse_notes.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8085")

	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
