package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// setupStorefrontRouter wires the middleware the way cmd/storefront does,
// with a stand-in for the request-id middleware and a few representative
// storefront routes.
func setupStorefrontRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	engine.Use(Recovery(logger))
	engine.Use(GinMiddleware(logger))

	engine.GET("/api/v1/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": []string{}})
	})
	engine.POST("/api/v1/cart/items", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found in catalog"})
	})
	engine.GET("/api/v1/broken", func(c *gin.Context) {
		panic("cart state corrupted")
	})
	return engine
}

func TestGinMiddlewareLogsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	engine := setupStorefrontRouter(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?category=Electronics", nil)
	req.Header.Set("User-Agent", "storefront-test")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "/api/v1/catalog", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "category=Electronics", fields["query"])
	assert.Equal(t, "storefront-test", fields["user_agent"])
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
}

func TestGinMiddlewareWarnsOnClientErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	engine := setupStorefrontRouter(zap.New(core))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	engine := setupStorefrontRouter(zap.New(core))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "/api/v1/broken", fields["path"])
	assert.Equal(t, "cart state corrupted", fields["error"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the middleware logger when set", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		logger := zap.NewNop().Named("request")
		c.Set("logger", logger)
		assert.Same(t, logger, GetGinLogger(c))
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		logger := GetGinLogger(c)
		require.NotNil(t, logger)
		assert.NotPanics(t, func() {
			logger.Info("no middleware")
		})
	})
}
