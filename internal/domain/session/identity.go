package session

import (
	"time"

	"github.com/aaushop/storefront/internal/domain/cart"
)

// Role represents the privilege level of an authenticated identity
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity holds the server-confirmed attributes of an authenticated
// shopper. An anonymous session simply has no Identity.
type Identity struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Role      Role      `json:"role"`
}

// IsAdmin reports whether the identity carries the administrator role
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Snapshot is the combined identity + cart record persisted locally for an
// authenticated session. It is also the shape the backend returns for the
// administrative user listing.
type Snapshot struct {
	Identity
	Cart cart.Cart `json:"cart"`
}

// Validate checks that a decoded snapshot carries the required identity
// fields. A snapshot failing validation is treated the same as a corrupt
// record: discarded, never fatal.
func (s *Snapshot) Validate() bool {
	return s != nil && s.UserID != "" && s.Email != ""
}
