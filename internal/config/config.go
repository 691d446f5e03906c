// Copyright (c) 2026 Clearcut Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CONTENT_DB_PATH" envDefault:"./data/content.db"`
	ServerHost string `env:"CONTENT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CONTENT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CONTENT_ENV" envDefault:"development"`
	LogLevel   string `env:"CONTENT_LOG_LEVEL" envDefault:"info"`

	// APIToken authorizes the translation endpoint (Bearer token).
	APIToken string `env:"CONTENT_API_TOKEN,required"`

	// Cache configuration
	RedisURL    string `env:"CONTENT_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix string `env:"CONTENT_CACHE_PREFIX" envDefault:"ccut:"` // Redis key prefix
	CacheTTL    int    `env:"CONTENT_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds

	// Listing configuration
	DefaultPageSize int `env:"CONTENT_DEFAULT_PAGE_SIZE" envDefault:"10"`
	MaxPageSize     int `env:"CONTENT_MAX_PAGE_SIZE" envDefault:"50"`

	// Translation backend configuration
	OpenAIAPIKey          string        `env:"CONTENT_OPENAI_API_KEY"`
	OpenAIBaseURL         string        `env:"CONTENT_OPENAI_BASE_URL"` // Optional OpenAI-compatible endpoint
	TranslateModel        string        `env:"CONTENT_TRANSLATE_MODEL" envDefault:"gpt-4o-mini"`
	TranslateBatchSize    int           `env:"CONTENT_TRANSLATE_BATCH_SIZE" envDefault:"5"`
	TranslateChunkDelay   time.Duration `env:"CONTENT_TRANSLATE_CHUNK_DELAY" envDefault:"1s"`
	TranslateChunkTimeout time.Duration `env:"CONTENT_TRANSLATE_CHUNK_TIMEOUT" envDefault:"60s"`

	// Seeding configuration
	DoSeed bool `env:"CONTENT_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// CacheTTLDuration returns the cache TTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// MinAPITokenLength is the minimum accepted length for the API token.
const MinAPITokenLength = 16

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.APIToken) < MinAPITokenLength {
		return nil, fmt.Errorf("CONTENT_API_TOKEN must be at least %d bytes long, got %d; "+
			"generate one with: openssl rand -base64 24",
			MinAPITokenLength, len(cfg.APIToken))
	}

	if cfg.TranslateBatchSize < 1 {
		return nil, fmt.Errorf("CONTENT_TRANSLATE_BATCH_SIZE must be at least 1, got %d",
			cfg.TranslateBatchSize)
	}

	return cfg, nil
}
