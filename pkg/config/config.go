package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Engine    EngineConfig
	Data      DataConfig
	Embedding EmbeddingConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

// EngineConfig controls how the recommendation engine is built.
type EngineConfig struct {
	KeyStrategy    string
	RebuildOnStart bool
	RebuildTimeout time.Duration
}

// DataConfig points at the campaign-record export of the data-prep pipeline.
type DataConfig struct {
	CampaignsURL       string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

// EmbeddingConfig points at the external embedding API.
type EmbeddingConfig struct {
	APIURL             string
	APIKey             string
	Model              string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			KeyStrategy:    getEnv("MATCH_KEY_STRATEGY", "role_industry"),
			RebuildOnStart: getBoolEnv("REBUILD_ON_START", true),
			RebuildTimeout: getDurationEnv("REBUILD_TIMEOUT", "120s"),
		},
		Data: DataConfig{
			CampaignsURL:       getEnv("CAMPAIGNS_URL", ""),
			RequestTimeout:     getDurationEnv("DATA_REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("DATA_RATE_LIMIT_PER_SECOND", 10),
		},
		Embedding: EmbeddingConfig{
			APIURL:             getEnv("EMBEDDING_API_URL", ""),
			APIKey:             getEnv("EMBEDDING_API_KEY", ""),
			Model:              getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			RequestTimeout:     getDurationEnv("EMBEDDING_REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("EMBEDDING_RATE_LIMIT_PER_SECOND", 10),
		},
	}

	switch config.Engine.KeyStrategy {
	case "role", "role_industry":
	default:
		return nil, fmt.Errorf("invalid MATCH_KEY_STRATEGY %q (want role or role_industry)", config.Engine.KeyStrategy)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
