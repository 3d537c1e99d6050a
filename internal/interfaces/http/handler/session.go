package handler

import (
	"github.com/aaushop/storefront/internal/application/session"
	"github.com/aaushop/storefront/internal/domain/cart"
	domainsession "github.com/aaushop/storefront/internal/domain/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the session lifecycle: current state, login,
// registration and logout.
type SessionHandler struct {
	BaseHandler
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/session")
	{
		sessions.GET("", h.Current)
		sessions.POST("/login", h.Login)
		sessions.POST("/register", h.Register)
		sessions.POST("/logout", h.Logout)
	}
}

// SessionStateResponse is the caller-visible session state
type SessionStateResponse struct {
	Authenticated bool                    `json:"authenticated"`
	Identity      *domainsession.Identity `json:"identity,omitempty"`
	Cart          cart.Cart               `json:"cart"`
	ItemCount     int                     `json:"itemCount"`
}

func toStateResponse(state session.State) SessionStateResponse {
	c := state.Cart
	if c == nil {
		c = cart.Cart{}
	}
	return SessionStateResponse{
		Authenticated: state.IsAuthenticated(),
		Identity:      state.Identity,
		Cart:          c,
		ItemCount:     cart.ItemCount(c),
	}
}

// Current returns the current session state
func (h *SessionHandler) Current(c *gin.Context) {
	h.Success(c, toStateResponse(h.manager.Current()))
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the store backend
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login request: "+err.Error())
		return
	}

	state, err := h.manager.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toStateResponse(state))
}

// RegisterRequest carries new-account details
type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates an account on the store backend
func (h *SessionHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid registration request: "+err.Error())
		return
	}

	state, err := h.manager.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toStateResponse(state))
}

// Logout clears the session back to anonymous
func (h *SessionHandler) Logout(c *gin.Context) {
	state := h.manager.Logout(c.Request.Context())
	h.Success(c, toStateResponse(state))
}
