package cache

import (
	"context"
	"time"

	"github.com/aaushop/storefront/internal/domain/catalog"
)

// CatalogCache caches the product catalog fetched from the backend so the
// storefront does not hammer the remote store on every browse request.
type CatalogCache interface {
	// Get returns the cached catalog and whether a live (non-expired)
	// entry was found.
	Get(ctx context.Context) ([]catalog.Product, bool)

	// Set stores the catalog with the cache's configured TTL.
	Set(ctx context.Context, products []catalog.Product)

	// Invalidate drops the cached catalog (used after seeding).
	Invalidate(ctx context.Context)
}

// DefaultCatalogTTL is used when no TTL is configured
const DefaultCatalogTTL = 30 * time.Second
