package session

import (
	"context"
	"errors"
	"sync"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/domain/shared"
	"github.com/aaushop/storefront/internal/infrastructure/storeapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the caller-visible view of the session: the current identity
// (nil while anonymous) and the active cart.
type State struct {
	Identity *session.Identity
	Cart     cart.Cart
}

// IsAuthenticated reports whether the state belongs to a logged-in shopper
func (s State) IsAuthenticated() bool {
	return s.Identity != nil
}

// Manager owns the current identity and the active cart, mediating between
// the local store, the backend gateway and the pure cart operations.
//
// All entry points are serialized by a single mutex, giving the same
// sequential timeline the engine is specified against. The only background
// work is the remote cart push, which leaves the critical path before the
// goroutine starts and carries its own full cart copy.
//
// The in-memory cart is authoritative for the running session: local
// persistence failures are logged and tolerated, and a failed remote push
// neither rolls anything back nor blocks further mutations.
type Manager struct {
	store   session.LocalStore
	gateway session.Gateway
	tokens  *storeapi.TokenStore
	logger  *zap.Logger

	mu       sync.Mutex
	identity *session.Identity
	cart     cart.Cart

	pushes sync.WaitGroup
}

// NewManager constructs the session manager and performs the bootstrap
// transition: authenticated snapshot if present and well-formed, guest cart
// otherwise, empty anonymous cart as the last resort. Bootstrap never fails;
// corrupt records are discarded and logged.
func NewManager(
	ctx context.Context,
	store session.LocalStore,
	gateway session.Gateway,
	tokens *storeapi.TokenStore,
	logger *zap.Logger,
) *Manager {
	m := &Manager{
		store:   store,
		gateway: gateway,
		tokens:  tokens,
		logger:  logger.With(zap.String("session_id", uuid.NewString())),
	}
	m.bootstrap(ctx)
	return m
}

// bootstrap loads persisted state into the session
func (m *Manager) bootstrap(ctx context.Context) {
	snap, err := m.store.LoadSnapshot(ctx)
	switch {
	case err == nil && snap.Validate():
		m.identity = &snap.Identity
		m.cart = snap.Cart
		m.restoreToken(ctx)
		m.logger.Info("Session restored from snapshot",
			zap.String("user_id", snap.UserID),
			zap.Int("cart_items", cart.ItemCount(snap.Cart)),
		)
		return
	case err == nil:
		m.logger.Warn("Discarding snapshot with missing identity fields")
		m.discardSnapshot(ctx)
	case errors.Is(err, shared.ErrCorruptRecord):
		m.logger.Warn("Discarding corrupt snapshot", zap.Error(err))
		m.discardSnapshot(ctx)
	case !errors.Is(err, shared.ErrNotFound):
		m.logger.Warn("Failed to load snapshot, continuing as anonymous", zap.Error(err))
	}

	guest, err := m.store.LoadGuestCart(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			m.logger.Warn("Failed to load guest cart, starting empty", zap.Error(err))
		}
		m.cart = cart.Cart{}
		m.logger.Info("Session started as anonymous with empty cart")
		return
	}
	m.cart = guest
	m.logger.Info("Session started as anonymous with guest cart",
		zap.Int("cart_items", cart.ItemCount(guest)),
	)
}

// restoreToken seeds the token store from local persistence
func (m *Manager) restoreToken(ctx context.Context) {
	token, err := m.store.LoadToken(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			m.logger.Warn("Failed to load auth token", zap.Error(err))
		}
		return
	}
	m.tokens.Set(token)
	if !m.tokens.Valid() {
		m.logger.Warn("Persisted auth token expired, remote sync disabled until next login")
	}
}

// discardSnapshot removes an unusable snapshot record, best-effort
func (m *Manager) discardSnapshot(ctx context.Context) {
	if err := m.store.DeleteSnapshot(ctx); err != nil && !errors.Is(err, shared.ErrNotFound) {
		m.logger.Warn("Failed to delete discarded snapshot", zap.Error(err))
	}
}

// Current returns the current session state
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Login authenticates against the backend, forwarding the current guest
// cart so the server side can decide how to reconcile it. On success the
// session adopts the server-returned cart verbatim - the engine never
// re-merges on its own. On failure the prior anonymous session is untouched
// and the error is returned for display.
func (m *Manager) Login(ctx context.Context, email, password string) (State, error) {
	m.mu.Lock()
	guest := m.cart
	m.mu.Unlock()

	result, err := m.gateway.Login(ctx, email, password, guest)
	if err != nil {
		m.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return m.Current(), err
	}
	return m.adopt(ctx, result), nil
}

// Register creates an account, seeding the remote cart from the current
// guest cart, and adopts the returned identity and cart like Login.
func (m *Manager) Register(ctx context.Context, username, email, password string) (State, error) {
	m.mu.Lock()
	guest := m.cart
	m.mu.Unlock()

	result, err := m.gateway.Register(ctx, username, email, password, guest)
	if err != nil {
		m.logger.Warn("Registration failed", zap.String("email", email), zap.Error(err))
		return m.Current(), err
	}
	return m.adopt(ctx, result), nil
}

// adopt installs an authentication result as the active session
func (m *Manager) adopt(ctx context.Context, result *session.AuthResult) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.identity = &result.Identity
	m.cart = result.Cart
	m.tokens.Set(result.Token)

	if err := m.store.SaveToken(ctx, result.Token); err != nil {
		m.logger.Warn("Failed to persist auth token", zap.Error(err))
	}
	m.persistLocked(ctx)

	m.logger.Info("User logged in",
		zap.String("user_id", result.Identity.UserID),
		zap.String("role", string(result.Identity.Role)),
		zap.Int("cart_items", cart.ItemCount(result.Cart)),
	)
	return m.stateLocked()
}

// Logout destroys the authenticated session: all persisted identity, cart
// and token state is cleared and the session reverts to anonymous with an
// empty cart. Nothing carries over.
func (m *Manager) Logout(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.identity != nil {
		m.logger.Info("User logged out", zap.String("user_id", m.identity.UserID))
	}
	m.identity = nil
	m.cart = cart.Cart{}
	m.tokens.Clear()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("Failed to clear persisted session state", zap.Error(err))
	}
	return m.stateLocked()
}

// AddToCart adds a product to the active cart and persists the new state
func (m *Manager) AddToCart(ctx context.Context, product catalog.Product) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart.Add(m.cart, product)
	m.persistLocked(ctx)
	return m.stateLocked()
}

// RemoveFromCart removes a product from the active cart entirely
func (m *Manager) RemoveFromCart(ctx context.Context, productID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart.Remove(m.cart, productID)
	m.persistLocked(ctx)
	return m.stateLocked()
}

// AdjustQuantity changes a cart item's quantity by delta, floored at 1
func (m *Manager) AdjustQuantity(ctx context.Context, productID string, delta int) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart.AdjustQuantity(m.cart, productID, delta)
	m.persistLocked(ctx)
	return m.stateLocked()
}

// persistLocked writes the active cart to local persistence and, when
// authenticated, schedules the fire-and-forget remote push. Callers must
// hold the mutex.
func (m *Manager) persistLocked(ctx context.Context) {
	if m.identity == nil {
		if err := m.store.SaveGuestCart(ctx, m.cart); err != nil {
			m.logger.Warn("Failed to persist guest cart", zap.Error(err))
		}
		return
	}

	snap := &session.Snapshot{Identity: *m.identity, Cart: m.cart}
	if err := m.store.SaveSnapshot(ctx, snap); err != nil {
		m.logger.Warn("Failed to persist session snapshot", zap.Error(err))
	}

	// The push carries the full cart as of this mutation (replace
	// semantics), so a late-arriving earlier push can only be superseded,
	// never merged out of order. It is detached from the caller's context:
	// once issued it completes or fails on its own.
	snapshot := m.cart
	userID := m.identity.UserID
	m.pushes.Add(1)
	go func() {
		defer m.pushes.Done()
		m.gateway.SyncCart(context.Background(), userID, snapshot)
	}()
}

// stateLocked builds the caller-visible state. Callers must hold the mutex.
func (m *Manager) stateLocked() State {
	var identity *session.Identity
	if m.identity != nil {
		copied := *m.identity
		identity = &copied
	}
	return State{Identity: identity, Cart: m.cart}
}

// Flush waits for outstanding remote pushes to finish. Used on shutdown so
// the last cart state reaches the backend when it is reachable.
func (m *Manager) Flush() {
	m.pushes.Wait()
}
