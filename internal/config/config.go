package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	BaseURL string

	// Database
	DBDriver string // "sqlite" or "postgres"
	DBPath   string // SQLite file path
	DBURL    string // PostgreSQL connection string

	// Mileage cache refresh
	RefreshSchedule  string // cron expression
	RefreshOnStartup bool

	// Frontend
	StaticDir string
}

func Load() *Config {
	// Missing .env is fine; env vars and defaults still apply.
	godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "3001"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3001"),
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBPath:           getEnv("DB_PATH", "./data/garagebook.db"),
		DBURL:            getEnv("DATABASE_URL", ""),
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "0 3 * * *"), // 3am daily
		RefreshOnStartup: getEnvBool("REFRESH_ON_STARTUP", false),
		StaticDir:        getEnv("STATIC_DIR", "./frontend"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	val = strings.ToLower(val)
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
