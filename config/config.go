package config

import (
	"os"
	"time"
)

type Config struct {
	Port             string
	CatalogPath      string
	DBPath           string
	EnvironmentsPath string
	DefaultEnv       string
	QueryTimeout     time.Duration
	SessionTTL       time.Duration // 0 keeps session contexts for the process lifetime
	MCPMode          string        // "stdio" serves the MCP tool instead of HTTP
}

func GetConfig() Config {
	return Config{
		Port:             getEnv("PORT", "9090"),
		CatalogPath:      getEnv("CATALOG_PATH", "./queries.json"),
		DBPath:           getEnv("DB_PATH", "./data/badger"),
		EnvironmentsPath: getEnv("ENVIRONMENTS_PATH", "./environments.yaml"),
		DefaultEnv:       getEnv("DEFAULT_ENV", "dev"),
		QueryTimeout:     getDuration("QUERY_TIMEOUT", 30*time.Second),
		SessionTTL:       getDuration("SESSION_TTL", 0),
		MCPMode:          getEnv("MCP_MODE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
