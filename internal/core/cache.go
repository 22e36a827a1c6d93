package core

import (
	c "badge/internal/cache"
	"badge/internal/configuration"
	"badge/internal/models"

	"go.uber.org/zap"
)

// NewCache returns nil when no cache is configured, which disables rate limiting.
func NewCache(config models.CacheConfiguration) c.ICache {
	var cache c.ICache
	var err error

	switch config.Type {
	case configuration.CacheRedis:
		cache, err = c.NewRedisCache(config.Redis)
	case configuration.CacheValkey:
		cache, err = c.NewValkeyCache(config.Valkey)
	default:
		zap.L().Info("No cache configured, rate limiting disabled")
		return nil
	}

	if err != nil {
		zap.L().Fatal("Failed to initialize cache", zap.String("type", config.Type), zap.Error(err))
	}

	zap.L().Info("Cache initialized",
		zap.String("type", config.Type),
		zap.Int("rate_limit_per_minute", config.RateLimitPerMinute))
	return cache
}
