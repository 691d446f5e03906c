package cache

import (
	"log/slog"
	"time"
)

// New creates the configured cache backend: Redis when a URL is provided,
// in-memory otherwise. A Redis connection failure falls back to memory with
// a warning rather than refusing to start.
func New(redisURL, prefix string, defaultTTL time.Duration) Cache {
	if redisURL != "" {
		c, err := NewRedisCache(redisURL, prefix, defaultTTL)
		if err == nil {
			slog.Info("using redis cache", "category", "cache")
			return c
		}
		slog.Warn("redis cache unavailable, falling back to memory",
			"category", "cache", "error", err)
	}
	return NewMemoryCache(defaultTTL)
}
