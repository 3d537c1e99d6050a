package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"go.uber.org/zap"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

// Config holds the store client configuration
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// Client talks to the remote cart store backend. It deliberately degrades
// instead of failing: catalog and user reads return empty results on any
// transport problem, cart pushes are swallowed entirely, and only the auth
// operations surface errors because the shopper must see them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenStore
	logger     *zap.Logger
}

// NewClient creates a store client
func NewClient(cfg Config, tokens *TokenStore, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

// CheckHealth probes the backend root endpoint. Any response at all counts
// as reachable; this never returns an error.
func (c *Client) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	return true
}

// GetProducts fetches the full catalog, normalizing backend storage ids.
// Returns an empty slice on any failure so browsing can fall back to the
// built-in catalog.
func (c *Client) GetProducts(ctx context.Context) []catalog.Product {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		c.logger.Warn("Failed to fetch catalog from backend", zap.Error(err))
		return []catalog.Product{}
	}

	var payloads []productPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		c.logger.Warn("Failed to decode catalog response", zap.Error(err))
		return []catalog.Product{}
	}

	products := make([]catalog.Product, 0, len(payloads))
	for i := range payloads {
		products = append(products, payloads[i].toDomain())
	}
	return products
}

// Login authenticates with the backend, forwarding the guest cart for
// server-side reconciliation. Failures are returned as AuthenticationError
// carrying the server message when one is available.
func (c *Client) Login(ctx context.Context, email, password string, guestCart cart.Cart) (*session.AuthResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/users/login", loginRequest{
		Email:    email,
		Password: password,
		Cart:     guestCart,
	})
	if err != nil {
		return nil, session.NewAuthenticationError(serverMessage(err))
	}

	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("Failed to decode login response", zap.Error(err))
		return nil, session.NewAuthenticationError("")
	}
	return c.toAuthResult(&payload)
}

// Register creates an account, forwarding the guest cart so the backend can
// seed the new account's remote cart from it.
func (c *Client) Register(ctx context.Context, username, email, password string, guestCart cart.Cart) (*session.AuthResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/users/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
		Cart:     guestCart,
	})
	if err != nil {
		return nil, session.NewRegistrationError(serverMessage(err))
	}

	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("Failed to decode registration response", zap.Error(err))
		return nil, session.NewRegistrationError("")
	}
	result, err := c.toAuthResult(&payload)
	if err != nil {
		return nil, session.NewRegistrationError(err.Error())
	}
	return result, nil
}

func (c *Client) toAuthResult(payload *userPayload) (*session.AuthResult, error) {
	identity := payload.toIdentity()
	if identity.UserID == "" {
		return nil, session.NewAuthenticationError("Server returned an incomplete account record")
	}
	return &session.AuthResult{
		Identity: identity,
		Cart:     toCartDomain(payload.Cart),
		Token:    payload.Token,
	}, nil
}

// SyncCart pushes the full cart with replace semantics. It is a no-op
// without a usable token, and transport failures are logged and swallowed:
// the local cart stays authoritative either way.
func (c *Client) SyncCart(ctx context.Context, userID string, cartState cart.Cart) {
	if !c.tokens.Valid() {
		return
	}
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/users/cart", syncCartRequest{Cart: cartState}); err != nil {
		c.logger.Warn("Cart push to backend failed",
			zap.String("user_id", userID),
			zap.Int("cart_items", cart.ItemCount(cartState)),
			zap.Error(err),
		)
		return
	}
	c.logger.Debug("Cart pushed to backend",
		zap.String("user_id", userID),
		zap.Int("cart_items", cart.ItemCount(cartState)),
	)
}

// ListUsers fetches every account with its cart. Returns an empty slice if
// unauthorized or on any failure.
func (c *Client) ListUsers(ctx context.Context) []session.Snapshot {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		c.logger.Warn("Failed to fetch user listing", zap.Error(err))
		return []session.Snapshot{}
	}

	var payloads []userPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		c.logger.Warn("Failed to decode user listing", zap.Error(err))
		return []session.Snapshot{}
	}

	users := make([]session.Snapshot, 0, len(payloads))
	for i := range payloads {
		users = append(users, session.Snapshot{
			Identity: payloads[i].toIdentity(),
			Cart:     toCartDomain(payloads[i].Cart),
		})
	}
	return users
}

// SeedProducts pushes products to the backend one at a time, skipping
// individual failures. Returns the number accepted.
func (c *Client) SeedProducts(ctx context.Context, products []catalog.Product) int {
	accepted := 0
	for _, p := range products {
		if _, err := c.doRequest(ctx, http.MethodPost, "/api/products", toSeedPayload(p)); err != nil {
			c.logger.Warn("Failed to seed product",
				zap.String("product", p.Name),
				zap.Error(err),
			)
			continue
		}
		accepted++
	}
	return accepted
}

// doRequest performs an HTTP request against the backend, attaching the
// bearer token when one is held.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var payload errorPayload
		if json.Unmarshal(respBody, &payload) == nil && payload.Message != "" {
			return nil, &serverError{Status: resp.StatusCode, Message: payload.Message}
		}
		return nil, &serverError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	return respBody, nil
}

// serverError is a backend-reported failure with its message preserved for
// display.
type serverError struct {
	Status  int
	Message string
}

func (e *serverError) Error() string {
	return e.Message
}

// serverMessage extracts the backend's message from an error, or "" when
// the failure was transport-level (callers then use their default message).
func serverMessage(err error) string {
	if se, ok := err.(*serverError); ok {
		return se.Message
	}
	return ""
}

// Ensure Client implements the store gateway
var _ session.Gateway = (*Client)(nil)
