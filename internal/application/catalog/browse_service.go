package catalog

import (
	"context"

	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// BrowseService serves the product catalog. Reads go cache first, then the
// backend; when both come up empty the built-in seed catalog is served so
// browsing keeps working offline.
type BrowseService struct {
	gateway session.Gateway
	cache   cache.CatalogCache
	logger  *zap.Logger
}

// NewBrowseService creates a new BrowseService
func NewBrowseService(gateway session.Gateway, catalogCache cache.CatalogCache, logger *zap.Logger) *BrowseService {
	return &BrowseService{
		gateway: gateway,
		cache:   catalogCache,
		logger:  logger,
	}
}

// Catalog returns the full product catalog
func (s *BrowseService) Catalog(ctx context.Context) []catalog.Product {
	if products, ok := s.cache.Get(ctx); ok {
		return products
	}

	products := s.gateway.GetProducts(ctx)
	if len(products) > 0 {
		s.cache.Set(ctx, products)
		return products
	}

	s.logger.Debug("Backend returned no products, serving built-in catalog")
	return catalog.SeedProducts()
}

// Browse returns the catalog narrowed by category and free-text query.
// An empty or "All" category keeps every category; an empty query keeps
// every product.
func (s *BrowseService) Browse(ctx context.Context, category, query string) []catalog.Product {
	return catalog.Filter(s.Catalog(ctx), category, query)
}

// Find returns the catalog product with the given id
func (s *BrowseService) Find(ctx context.Context, productID string) (catalog.Product, bool) {
	for _, p := range s.Catalog(ctx) {
		if p.ID == productID {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Categories returns the fixed category list for the browse UI
func (s *BrowseService) Categories() []catalog.Category {
	return catalog.AllCategories()
}

// Refresh drops the cached catalog and refetches from the backend
func (s *BrowseService) Refresh(ctx context.Context) []catalog.Product {
	s.cache.Invalidate(ctx)
	return s.Catalog(ctx)
}
