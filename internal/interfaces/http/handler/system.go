package handler

import (
	"github.com/aaushop/storefront/internal/infrastructure/health"
	"github.com/gin-gonic/gin"
)

// SystemHandler exposes storefront liveness and backend reachability
type SystemHandler struct {
	BaseHandler
	monitor *health.Monitor
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(monitor *health.Monitor, version string) *SystemHandler {
	return &SystemHandler{monitor: monitor, version: version}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse reports storefront and backend status
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	BackendOnline bool   `json:"backendOnline"`
	// BackendChecked is false until the first probe has completed
	BackendChecked bool `json:"backendChecked"`
}

// Health returns liveness plus the last observed backend state. The
// storefront itself is always "ok" here - an unreachable backend is
// degraded operation, not an outage.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:         "ok",
		Version:        h.version,
		BackendOnline:  h.monitor.Online(),
		BackendChecked: h.monitor.Checked(),
	})
}
