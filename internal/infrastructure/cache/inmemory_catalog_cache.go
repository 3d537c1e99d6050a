package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aaushop/storefront/internal/domain/catalog"
)

// InMemoryCatalogCache is a process-local catalog cache. Suitable for
// single-instance deployments and testing; state is not shared across
// processes.
type InMemoryCatalogCache struct {
	ttl time.Duration

	mu        sync.RWMutex
	products  []catalog.Product
	expiresAt time.Time
}

// NewInMemoryCatalogCache creates an in-memory catalog cache with the given TTL
func NewInMemoryCatalogCache(ttl time.Duration) *InMemoryCatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &InMemoryCatalogCache{ttl: ttl}
}

// Get returns the cached catalog if a live entry exists
func (c *InMemoryCatalogCache) Get(_ context.Context) ([]catalog.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.products == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out, true
}

// Set stores the catalog with the configured TTL
func (c *InMemoryCatalogCache) Set(_ context.Context, products []catalog.Product) {
	stored := make([]catalog.Product, len(products))
	copy(stored, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = stored
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached catalog
func (c *InMemoryCatalogCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.expiresAt = time.Time{}
}

// Ensure InMemoryCatalogCache implements CatalogCache
var _ CatalogCache = (*InMemoryCatalogCache)(nil)
