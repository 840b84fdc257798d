package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/identity"
)

// AuthHandler handles login, registration and session introspection
type AuthHandler struct {
	BaseHandler
	identityService *identity.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *identity.Service) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// Login godoc
// @ID           login
// @Summary      Sign in to an account
// @Description  Exchanges credentials with the commerce backend and binds the account to the browser session. Guest cart and saved items are merged into customer accounts.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Login request"
// @Success      200 {object} APIResponse[identity.SessionView]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	view, err := h.identityService.Login(c.Request.Context(), getSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Register godoc
// @ID           register
// @Summary      Create a new account
// @Description  Registers a customer or vendor account with the commerce backend and signs the session in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Registration request"
// @Success      201 {object} APIResponse[identity.SessionView]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	view, err := h.identityService.Register(c.Request.Context(), getSession(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, view)
}

// Logout godoc
// @ID           logout
// @Summary      Sign out
// @Description  Drops the account binding and returns the session to guest. Safe to call for guests.
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[identity.SessionView]
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := getSession(c)
	if err := h.identityService.Logout(c.Request.Context(), sess); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, identity.NewSessionView(sess))
}

// Me godoc
// @ID           currentSession
// @Summary      Get the current session
// @Description  Returns the session state and, for signed-in sessions, the account profile.
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[identity.SessionView]
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	h.Success(c, h.identityService.Current(c.Request.Context(), getSession(c)))
}
