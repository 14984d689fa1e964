package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	TwelveAPIKey    string  `env:"TWELVE_API_KEY" envDefault:"-"`
	AssetSymbol     string  `env:"ASSET_SYMBOL" envDefault:"AAPL"`
	IndexSymbol     string  `env:"INDEX_SYMBOL" envDefault:"SPY"`
	StartDate       string  `env:"START_DATE"` // ISO date; default one year back
	EndDate         string  `env:"END_DATE"`   // ISO date; default today
	ConfidenceLevel float64 `env:"CONFIDENCE_LEVEL" envDefault:"0.95"`
	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout  int     `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds

	// Result store; persistence is skipped when DBHost is empty
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.AssetSymbol = getEnvWithDefault("ASSET_SYMBOL", "AAPL")
	cfg.IndexSymbol = getEnvWithDefault("INDEX_SYMBOL", "SPY")
	cfg.StartDate = getEnvWithDefault("START_DATE", time.Now().AddDate(-1, 0, 0).Format("2006-01-02"))
	cfg.EndDate = getEnvWithDefault("END_DATE", time.Now().Format("2006-01-02"))
	cfg.ConfidenceLevel = getEnvFloatWithDefault("CONFIDENCE_LEVEL", 0.95)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
