package cache

import (
	"time"

	"go.uber.org/zap"
)

// CatalogCacheFactory creates catalog caches based on configuration
type CatalogCacheFactory struct {
	redisConfig           RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CatalogCacheFactoryOption is a functional option for configuring the factory
type CatalogCacheFactoryOption func(*CatalogCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCatalogCacheFactory creates a new factory
func NewCatalogCacheFactory(cfg RedisConfig, ttl time.Duration, opts ...CatalogCacheFactoryOption) *CatalogCacheFactory {
	f := &CatalogCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed catalog cache
func (f *CatalogCacheFactory) CreateRedisCache() (CatalogCache, error) {
	return NewRedisCatalogCache(f.redisConfig, f.ttl)
}

// CreateInMemoryCache creates a process-local catalog cache
func (f *CatalogCacheFactory) CreateInMemoryCache() CatalogCache {
	return NewInMemoryCatalogCache(f.ttl)
}

// CreateCache tries Redis first and falls back to the in-memory cache when
// Redis is unavailable and fallback is allowed.
func (f *CatalogCacheFactory) CreateCache() (CatalogCache, error) {
	store, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis catalog cache")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory catalog cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
