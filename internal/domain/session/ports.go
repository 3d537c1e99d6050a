package session

import (
	"context"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
)

// LocalStore is the device-local persistence boundary. It holds at most one
// authenticated snapshot and one guest cart, which are mutually exclusive
// for cart ownership: saving a snapshot removes the guest cart record.
//
// Absent records are reported as shared.ErrNotFound; records that exist but
// cannot be decoded wrap shared.ErrCorruptRecord so callers can recover by
// discarding them.
type LocalStore interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	DeleteSnapshot(ctx context.Context) error
	LoadGuestCart(ctx context.Context) (cart.Cart, error)
	SaveGuestCart(ctx context.Context, c cart.Cart) error
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthResult is what the backend returns from a successful login or
// registration: the confirmed identity, the cart the account now holds
// remotely (already seeded from the guest cart on registration), and the
// bearer token for subsequent calls.
type AuthResult struct {
	Identity Identity
	Cart     cart.Cart
	Token    string
}

// Gateway is the client boundary to the remote store backend. Transport
// failures never escape as errors except from Login and Register, which
// return AuthenticationError / RegistrationError for display.
type Gateway interface {
	// CheckHealth probes backend reachability. It never fails; an
	// unreachable backend is simply reported as false.
	CheckHealth(ctx context.Context) bool

	// GetProducts returns the full current catalog, or an empty slice on
	// any failure.
	GetProducts(ctx context.Context) []catalog.Product

	// Login authenticates with the backend. The guest cart is forwarded so
	// the backend can decide how to reconcile it with the account's
	// existing remote cart; the caller adopts the returned cart verbatim.
	Login(ctx context.Context, email, password string, guestCart cart.Cart) (*AuthResult, error)

	// Register creates an account; the returned cart reflects seeding from
	// the guest cart.
	Register(ctx context.Context, username, email, password string, guestCart cart.Cart) (*AuthResult, error)

	// SyncCart pushes the full current cart for the user with replace
	// semantics. It is fire-and-forget: transport errors are swallowed and
	// it is a no-op when no token is held.
	SyncCart(ctx context.Context, userID string, c cart.Cart)

	// ListUsers returns every account with its cart for the administrative
	// valuation view, or an empty slice if unauthorized or on failure.
	ListUsers(ctx context.Context) []Snapshot

	// SeedProducts pushes the built-in catalog to the backend, one product
	// at a time. Individual failures are logged and skipped; the returned
	// count is the number of products accepted.
	SeedProducts(ctx context.Context, products []catalog.Product) int
}
