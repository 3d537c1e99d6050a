package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "storefront:catalog"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisCatalogCache caches the catalog in Redis so multiple storefront
// instances can share one fetched copy.
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogCache creates a Redis-backed catalog cache, verifying the
// connection up front so callers can fall back cleanly.
func NewRedisCatalogCache(cfg RedisConfig, ttl time.Duration) (*RedisCatalogCache, error) {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCatalogCache{client: client, ttl: ttl}, nil
}

// Get returns the cached catalog if present and decodable. Transport and
// decode failures both read as a cache miss.
func (c *RedisCatalogCache) Get(ctx context.Context) ([]catalog.Product, bool) {
	data, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// Set stores the catalog with the configured TTL, best-effort
func (c *RedisCatalogCache) Set(ctx context.Context, products []catalog.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.client.Set(ctx, catalogCacheKey, data, c.ttl)
}

// Invalidate drops the cached catalog, best-effort
func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	c.client.Del(ctx, catalogCacheKey)
}

// Close closes the Redis client
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCatalogCache implements CatalogCache
var _ CatalogCache = (*RedisCatalogCache)(nil)
