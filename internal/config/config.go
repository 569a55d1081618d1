package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LedgerConfig holds ledger persistence configuration
type LedgerConfig struct {
	DatabaseURL    string // Empty = in-memory ledger
	InitialBalance float64
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL      string // Empty = statistics caching disabled
	Password string
	StatsTTL time.Duration
}

// EngineConfig holds calculation engine defaults
type EngineConfig struct {
	DefaultBankroll   float64
	DefaultIterations int
	MaxIterations     int
}

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Ledger LedgerConfig
	Redis  RedisConfig
	Engine EngineConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8086"),
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		},
		Ledger: LedgerConfig{
			DatabaseURL:    getEnv("DATABASE_URL", ""),
			InitialBalance: getEnvFloat("INITIAL_BALANCE", 0.0),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			StatsTTL: time.Duration(getEnvInt("STATS_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
		Engine: EngineConfig{
			DefaultBankroll:   getEnvFloat("DEFAULT_BANKROLL", 10000.0),
			DefaultIterations: getEnvInt("MC_DEFAULT_ITERATIONS", 10000),
			MaxIterations:     getEnvInt("MC_MAX_ITERATIONS", 1000000),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
