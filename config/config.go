package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort          string
	DatabaseURL         string
	HistoryAPIURL       string
	HistoryFetchTimeout string
	MigrationsDir       string
	LogLevel            string
	EmailMXCheck        string
}

// GetHistoryFetchTimeout returns the upstream fetch timeout from environment or default
func (c *Config) GetHistoryFetchTimeout() time.Duration {
	if c.HistoryFetchTimeout == "" {
		return 10 * time.Second
	}

	seconds, err := strconv.Atoi(c.HistoryFetchTimeout)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid HISTORY_FETCH_TIMEOUT_SECONDS value: %s, using default 10 seconds", c.HistoryFetchTimeout)
		return 10 * time.Second
	}

	return time.Duration(seconds) * time.Second
}

// EmailMXCheckEnabled reports whether feedback email validation should perform MX lookups.
// Disabled in offline environments and tests.
func (c *Config) EmailMXCheckEnabled() bool {
	return c.EmailMXCheck != "false" && c.EmailMXCheck != "0"
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		HistoryAPIURL:       getEnv("HISTORY_API_URL", "https://today.zenquotes.io/api"),
		HistoryFetchTimeout: getEnv("HISTORY_FETCH_TIMEOUT_SECONDS", "10"),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "database/migrations"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		EmailMXCheck:        getEnv("EMAIL_MX_CHECK", "true"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
