package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// LLM backend
	LLMProvider     string // "anthropic", "ollama" or "mock"
	ModelName       string
	AnthropicAPIKey string
	OllamaURL       string

	// Session storage
	StorageBackend string // "redis" or "sqlite"
	RedisURL       string
	SQLitePath     string
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),
		ModelName:       getEnv("MODEL_NAME", "claude-sonnet-4-5"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "redis"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		SQLitePath:      getEnv("SQLITE_PATH", "./campaign.db"),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
