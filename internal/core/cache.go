package core

import (
	c "api/internal/cache"
	"api/internal/models"

	"go.uber.org/zap"
)

func NewCache(config models.CacheConfiguration) c.ICache {
	var cache c.ICache
	var err error

	switch config.Type {
	case "redis":
		cache, err = c.NewRueidisCache(
			config.Redis.Hosts,
			config.Redis.Password,
			config.Redis.TLSEnabled,
			config.Redis.TLSServerName,
			"redis",
		)
	case "valkey":
		cache, err = c.NewRueidisCache(
			config.Valkey.Hosts,
			config.Valkey.Password,
			config.Valkey.TLSEnabled,
			config.Valkey.TLSServerName,
			"valkey",
		)
	default:
		zap.L().Fatal("Unknown cache type", zap.String("type", config.Type))
	}

	if err != nil {
		zap.L().Fatal("Failed to initialize cache", zap.Error(err))
	}

	return cache
}
