// Package config reads the server configuration from the environment.
// Both API keys are optional: without them the affected features degrade to
// empty results instead of failing startup.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Port the HTTP server listens on.
	Port int
	// DataDir holds the persisted preference blob.
	DataDir string
	// TMDBAPIKey authenticates catalog requests.
	TMDBAPIKey string
	// LLMAPIKey authenticates chat-completion requests.
	LLMAPIKey string
	// LLMAPIURL overrides the chat-completion endpoint.
	LLMAPIURL string
	// CacheTTL is the catalog response cache lifetime.
	CacheTTL time.Duration
	// LogFile, when set, routes logs through a rotating file.
	LogFile string
	// AIRequestsPerMinute is the per-IP rate limit on the AI endpoint.
	AIRequestsPerMinute int
}

// Load reads configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:                intEnv("PORT", 8480),
		DataDir:             stringEnv("DATA_DIR", "./data"),
		TMDBAPIKey:          os.Getenv("TMDB_API_KEY"),
		LLMAPIKey:           os.Getenv("LLM_API_KEY"),
		LLMAPIURL:           os.Getenv("LLM_API_URL"),
		CacheTTL:            durationEnv("CACHE_TTL", 5*time.Minute),
		LogFile:             os.Getenv("LOG_FILE"),
		AIRequestsPerMinute: intEnv("AI_RATE_LIMIT_PER_MINUTE", 5),
	}
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
