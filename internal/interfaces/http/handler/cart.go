package handler

import (
	appcatalog "github.com/aaushop/storefront/internal/application/catalog"
	"github.com/aaushop/storefront/internal/application/session"
	"github.com/gin-gonic/gin"
)

// CartHandler exposes cart mutations on the active session
type CartHandler struct {
	BaseHandler
	manager *session.Manager
	browse  *appcatalog.BrowseService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(manager *session.Manager, browse *appcatalog.BrowseService) *CartHandler {
	return &CartHandler{manager: manager, browse: browse}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.Get)
		carts.POST("/items", h.AddItem)
		carts.DELETE("/items/:productId", h.RemoveItem)
		carts.PATCH("/items/:productId", h.AdjustQuantity)
	}
}

// Get returns the session state including the active cart
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, toStateResponse(h.manager.Current()))
}

// AddItemRequest identifies the product to add
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required,notblank"`
}

// AddItem adds one unit of a catalog product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid add request: "+err.Error())
		return
	}

	product, found := h.browse.Find(c.Request.Context(), req.ProductID)
	if !found {
		h.NotFound(c, "Product not found in catalog")
		return
	}

	state := h.manager.AddToCart(c.Request.Context(), product)
	h.Success(c, toStateResponse(state))
}

// RemoveItem removes a product from the cart entirely
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.BadRequest(c, "Product id is required")
		return
	}
	state := h.manager.RemoveFromCart(c.Request.Context(), productID)
	h.Success(c, toStateResponse(state))
}

// AdjustQuantityRequest carries the signed quantity change
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustQuantity changes an item's quantity by a signed delta, floored at 1
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		h.BadRequest(c, "Product id is required")
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid adjust request: "+err.Error())
		return
	}

	state := h.manager.AdjustQuantity(c.Request.Context(), productID, req.Delta)
	h.Success(c, toStateResponse(state))
}
