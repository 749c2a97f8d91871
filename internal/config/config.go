package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv       string
	DatasetsFile string
	CacheEnabled bool
	RedisAddr    string
	CacheTTL     time.Duration
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	cacheStr := getEnv("CACHE_ENABLED", "false")
	cacheEnabled, err := strconv.ParseBool(cacheStr)
	if err != nil {
		cacheEnabled = false
	}

	ttl := 10 * time.Minute
	if parsed, err := time.ParseDuration(getEnv("CACHE_TTL", "10m")); err == nil && parsed > 0 {
		ttl = parsed
	}

	return &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		DatasetsFile: getEnv("DATASETS_FILE", "./datasets.yaml"),
		CacheEnabled: cacheEnabled,
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     ttl,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
