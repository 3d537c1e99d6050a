package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaushop/storefront/internal/application/admin"
	appcatalog "github.com/aaushop/storefront/internal/application/catalog"
	appsession "github.com/aaushop/storefront/internal/application/session"
	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/domain/shared"
	"github.com/aaushop/storefront/internal/infrastructure/cache"
	"github.com/aaushop/storefront/internal/infrastructure/storeapi"
	"github.com/aaushop/storefront/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLocalStore struct {
	snapshot *session.Snapshot
	guest    cart.Cart
	hasGuest bool
	token    string
	hasToken bool
}

func (s *fakeLocalStore) LoadSnapshot(ctx context.Context) (*session.Snapshot, error) {
	if s.snapshot == nil {
		return nil, shared.ErrNotFound
	}
	return s.snapshot, nil
}

func (s *fakeLocalStore) SaveSnapshot(ctx context.Context, snapshot *session.Snapshot) error {
	s.snapshot = snapshot
	s.hasGuest = false
	return nil
}

func (s *fakeLocalStore) DeleteSnapshot(ctx context.Context) error {
	s.snapshot = nil
	return nil
}

func (s *fakeLocalStore) LoadGuestCart(ctx context.Context) (cart.Cart, error) {
	if !s.hasGuest {
		return nil, shared.ErrNotFound
	}
	return s.guest, nil
}

func (s *fakeLocalStore) SaveGuestCart(ctx context.Context, c cart.Cart) error {
	s.guest = c
	s.hasGuest = true
	return nil
}

func (s *fakeLocalStore) LoadToken(ctx context.Context) (string, error) {
	if !s.hasToken {
		return "", shared.ErrNotFound
	}
	return s.token, nil
}

func (s *fakeLocalStore) SaveToken(ctx context.Context, token string) error {
	s.token = token
	s.hasToken = true
	return nil
}

func (s *fakeLocalStore) Clear(ctx context.Context) error {
	s.snapshot = nil
	s.hasGuest = false
	s.hasToken = false
	return nil
}

type fakeStoreGateway struct {
	authResult *session.AuthResult
	authErr    error
}

func (g *fakeStoreGateway) CheckHealth(ctx context.Context) bool               { return true }
func (g *fakeStoreGateway) GetProducts(ctx context.Context) []catalog.Product  { return nil }
func (g *fakeStoreGateway) SyncCart(ctx context.Context, userID string, c cart.Cart) {}
func (g *fakeStoreGateway) ListUsers(ctx context.Context) []session.Snapshot   { return nil }

func (g *fakeStoreGateway) Login(ctx context.Context, email, password string, guestCart cart.Cart) (*session.AuthResult, error) {
	if g.authErr != nil {
		return nil, g.authErr
	}
	return g.authResult, nil
}

func (g *fakeStoreGateway) Register(ctx context.Context, username, email, password string, guestCart cart.Cart) (*session.AuthResult, error) {
	return g.Login(ctx, email, password, guestCart)
}

func (g *fakeStoreGateway) SeedProducts(ctx context.Context, products []catalog.Product) int {
	return len(products)
}

// apiResponse mirrors the dto envelope with raw data for per-test decoding
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupTestAPI(t *testing.T, gateway *fakeStoreGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidations())

	log := zap.NewNop()
	tokens := storeapi.NewTokenStore(log)
	manager := appsession.NewManager(context.Background(), &fakeLocalStore{}, gateway, tokens, log)
	catalogCache := cache.NewInMemoryCatalogCache(time.Minute)
	browse := appcatalog.NewBrowseService(gateway, catalogCache, log)
	valuation := admin.NewValuationService(gateway, catalogCache, log)

	engine := gin.New()
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(NewSessionHandler(manager)).
		Register(NewCartHandler(manager, browse)).
		Register(NewCatalogHandler(browse)).
		Register(NewAdminHandler(manager, valuation))
	r.Setup()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func authResultFor(userID string) *session.AuthResult {
	return &session.AuthResult{
		Identity: session.Identity{
			UserID:   userID,
			Username: "abebe",
			Email:    "abebe@example.com",
			Role:     session.RoleUser,
		},
		Cart:  cart.Cart{},
		Token: "tok-abc",
	}
}

func TestSessionRoutes(t *testing.T) {
	t.Run("fresh session is anonymous with an empty cart", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{})

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/session", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, resp.Success)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		assert.False(t, state.Authenticated)
		assert.Empty(t, state.Cart)
		assert.Zero(t, state.ItemCount)
	})

	t.Run("login adopts the backend identity", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{authResult: authResultFor("u1")})

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/session/login", gin.H{
			"email":    "abebe@example.com",
			"password": "secret",
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, resp.Success)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		assert.True(t, state.Authenticated)
		require.NotNil(t, state.Identity)
		assert.Equal(t, "u1", state.Identity.UserID)
	})

	t.Run("rejected login surfaces the backend message", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{
			authErr: session.NewAuthenticationError("Invalid credentials"),
		})

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/session/login", gin.H{
			"email":    "abebe@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_AUTH_FAILED", resp.Error.Code)
		assert.Equal(t, "Invalid credentials", resp.Error.Message)
	})

	t.Run("malformed login is a bad request", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{})

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/session/login", gin.H{
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("logout reverts to anonymous", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{authResult: authResultFor("u1")})

		doJSON(t, engine, http.MethodPost, "/api/v1/session/login", gin.H{
			"email":    "abebe@example.com",
			"password": "secret",
		})

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/session/logout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		assert.False(t, state.Authenticated)
		assert.Empty(t, state.Cart)
	})
}

func TestCartRoutes(t *testing.T) {
	// Backend returns no products, so the built-in catalog serves lookups
	engine := setupTestAPI(t, &fakeStoreGateway{})

	t.Run("adds a catalog product", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", gin.H{
			"productId": "inf-1",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		assert.Equal(t, 1, state.ItemCount)
		require.Len(t, state.Cart, 1)
		assert.Equal(t, "inf-1", state.Cart[0].ID)
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", gin.H{
			"productId": "no-such-product",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
	})

	t.Run("blank product id fails binding", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", gin.H{
			"productId": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("adjusts quantity with a floor of one", func(t *testing.T) {
		doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", gin.H{"productId": "inf-2"})

		w, resp := doJSON(t, engine, http.MethodPatch, "/api/v1/cart/items/inf-2", gin.H{
			"delta": -5,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		item, found := cart.Find(state.Cart, "inf-2")
		require.True(t, found)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("removes an item", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodDelete, "/api/v1/cart/items/inf-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var state SessionStateResponse
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		_, found := cart.Find(state.Cart, "inf-1")
		assert.False(t, found)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("valuations are forbidden for anonymous sessions", func(t *testing.T) {
		engine := setupTestAPI(t, &fakeStoreGateway{})

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/admin/valuations", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_FORBIDDEN", resp.Error.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	engine := setupTestAPI(t, &fakeStoreGateway{})

	t.Run("lists the catalog", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []catalog.Product
		require.NoError(t, json.Unmarshal(resp.Data, &products))
		assert.Len(t, products, len(catalog.SeedProducts()))
	})

	t.Run("filters by category and query", func(t *testing.T) {
		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/products?category=Electronics&q=zero", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []catalog.Product
		require.NoError(t, json.Unmarshal(resp.Data, &products))
		require.Len(t, products, 1)
		assert.Equal(t, "inf-2", products[0].ID)
	})
}
