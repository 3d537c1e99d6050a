package storeapi

import (
	"time"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// productPayload is the backend's product shape. The backend exposes its
// storage id as "_id"; it is normalized to Product.ID at this boundary so
// the rest of the engine never sees storage ids.
type productPayload struct {
	StorageID   string          `json:"_id"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	Tags        []string        `json:"tags"`
}

func (p *productPayload) toDomain() catalog.Product {
	id := p.ID
	if id == "" {
		id = p.StorageID
	}
	currency := valueobject.Currency(p.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return catalog.Product{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    currency,
		Category:    catalog.Category(p.Category),
		Image:       p.Image,
		Rating:      p.Rating,
		Tags:        p.Tags,
	}
}

// seedProductPayload is the create-product request body; the backend assigns
// its own storage id.
type seedProductPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	Tags        []string        `json:"tags"`
}

func toSeedPayload(p catalog.Product) seedProductPayload {
	return seedProductPayload{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    string(p.Currency),
		Category:    string(p.Category),
		Image:       p.Image,
		Rating:      p.Rating,
		Tags:        p.Tags,
	}
}

// cartItemPayload is a cart line as the backend stores it: a product
// snapshot plus quantity.
type cartItemPayload struct {
	productPayload
	Quantity int `json:"quantity"`
}

func toCartDomain(items []cartItemPayload) cart.Cart {
	c := make(cart.Cart, 0, len(items))
	for _, item := range items {
		c = append(c, cart.Item{
			Product:  item.productPayload.toDomain(),
			Quantity: item.Quantity,
		})
	}
	return c
}

// loginRequest carries credentials plus the local guest cart so the backend
// can reconcile it against the account's remote cart.
type loginRequest struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Cart     cart.Cart `json:"cart"`
}

type registerRequest struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Cart     cart.Cart `json:"cart"`
}

type syncCartRequest struct {
	Cart cart.Cart `json:"cart"`
}

// userPayload is the backend's user shape, shared by the auth endpoints and
// the administrative user listing. Older backend versions expose the admin
// flag as "isAdmin" rather than a role string.
type userPayload struct {
	StorageID string            `json:"_id"`
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	IsAdmin   bool              `json:"isAdmin"`
	CreatedAt time.Time         `json:"createdAt"`
	Cart      []cartItemPayload `json:"cart"`
	Token     string            `json:"token"`
}

func (u *userPayload) toIdentity() session.Identity {
	id := u.ID
	if id == "" {
		id = u.StorageID
	}
	role := session.RoleUser
	if u.Role == string(session.RoleAdmin) || u.IsAdmin {
		role = session.RoleAdmin
	}
	return session.Identity{
		UserID:    id,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Role:      role,
	}
}

// errorPayload is the backend's error body
type errorPayload struct {
	Message string `json:"message"`
}
