package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Gains   GainsConfig
	Logging LoggingConfig
	CORS    CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DataConfig holds the portfolio file and NAV cache locations.
type DataConfig struct {
	PortfolioFile   string
	NAVCacheDir     string
	NAVCacheTTLH    int    // cache freshness in hours
	RefreshSchedule string // cron spec for the scheduled NAV refresh
}

// GainsConfig holds the capital gains classification thresholds.
type GainsConfig struct {
	EquityLongTermDays int
	DebtLongTermDays   int
	LongTermExemption  float64
}

// LoggingConfig holds log level and file rotation settings.
type LoggingConfig struct {
	Level string
	File  string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Data: DataConfig{
			PortfolioFile:   getEnv("PORTFOLIO_FILE", "./data/portfolio.json"),
			NAVCacheDir:     getEnv("NAV_CACHE_DIR", "./data/cache"),
			NAVCacheTTLH:    getEnvInt("NAV_CACHE_TTL_HOURS", 24),
			RefreshSchedule: getEnv("NAV_REFRESH_SCHEDULE", "0 7 * * *"),
		},
		Gains: GainsConfig{
			EquityLongTermDays: getEnvInt("EQUITY_LTCG_DAYS", 365),
			DebtLongTermDays:   getEnvInt("DEBT_LTCG_DAYS", 1095),
			LongTermExemption:  getEnvFloat("LTCG_EXEMPTION", 100000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
