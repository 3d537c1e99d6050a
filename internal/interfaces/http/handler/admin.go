package handler

import (
	"github.com/aaushop/storefront/internal/application/admin"
	"github.com/aaushop/storefront/internal/application/session"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administrative valuation view and catalog
// seeding. Authorization comes from the active session's identity: the
// backend additionally enforces it on its side.
type AdminHandler struct {
	BaseHandler
	manager   *session.Manager
	valuation *admin.ValuationService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(manager *session.Manager, valuation *admin.ValuationService) *AdminHandler {
	return &AdminHandler{manager: manager, valuation: valuation}
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admins := rg.Group("/admin")
	{
		admins.GET("/valuations", h.Valuations)
		admins.POST("/catalog/seed", h.SeedCatalog)
	}
}

// Valuations returns every account with its cart valuation
func (h *AdminHandler) Valuations(c *gin.Context) {
	actor := h.manager.Current().Identity
	rows, err := h.valuation.ListValuations(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// SeedCatalogResponse reports how many products the backend accepted
type SeedCatalogResponse struct {
	Accepted int `json:"accepted"`
}

// SeedCatalog pushes the built-in catalog to the backend
func (h *AdminHandler) SeedCatalog(c *gin.Context) {
	actor := h.manager.Current().Identity
	accepted, err := h.valuation.SeedCatalog(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SeedCatalogResponse{Accepted: accepted})
}
