package handler

import (
	appcatalog "github.com/aaushop/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes catalog browsing
type CatalogHandler struct {
	BaseHandler
	browse *appcatalog.BrowseService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(browse *appcatalog.BrowseService) *CatalogHandler {
	return &CatalogHandler{browse: browse}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:productId", h.Get)
	}
	rg.GET("/categories", h.Categories)
}

// List returns the catalog, optionally narrowed by category and query
func (h *CatalogHandler) List(c *gin.Context) {
	category := c.Query("category")
	query := c.Query("q")
	h.Success(c, h.browse.Browse(c.Request.Context(), category, query))
}

// Get returns a single catalog product
func (h *CatalogHandler) Get(c *gin.Context) {
	product, found := h.browse.Find(c.Request.Context(), c.Param("productId"))
	if !found {
		h.NotFound(c, "Product not found in catalog")
		return
	}
	h.Success(c, product)
}

// Categories returns the fixed category list
func (h *CatalogHandler) Categories(c *gin.Context) {
	h.Success(c, h.browse.Categories())
}
