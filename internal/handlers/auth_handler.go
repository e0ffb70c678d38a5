package handlers

import (
	"log"

	"kirana/internal/middleware"
	"kirana/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for sessions: the OAuth broker
// exchange, password login for provisioned accounts, and logout.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/session", h.HandleCreateSession)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
}

// RegisterProtectedRoutes registers the auth routes that need a session.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/me", h.HandleMe)
}

// SessionRequest is the body for the OAuth session exchange.
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// HandleCreateSession exchanges an upstream OAuth session ID for a local
// session cookie.
func (h *AuthHandler) HandleCreateSession(c *fiber.Ctx) error {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, err)
	}

	user, token, err := h.authService.ExchangeSession(req.SessionID)
	if err != nil {
		log.Printf("Session exchange failed: %v", err)
		return errorResponse(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"user":          user,
		"session_token": token,
	})
}

// LoginRequest is the body for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a locally provisioned account.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, err)
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return errorResponse(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"user":          user,
		"session_token": token,
	})
}

// HandleMe returns the profile of the calling user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// HandleLogout revokes the calling session, if any, and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.authService.Logout(token); err != nil {
			log.Printf("Logout failed: %v", err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.SessionTTL().Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
}
