package middleware

import (
	"strings"

	"kirana/internal/models"
	"kirana/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenFromRequest extracts the session token from the session_token cookie
// or, failing that, a Bearer Authorization header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("session_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// SessionRequired resolves the calling user through the AuthService and
// stores it in c.Locals("user") for downstream handlers.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authenticated",
			})
		}

		user, err := authService.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// AdminRequired re-checks the admin flag at the point of execution. The
// admin-only navigation in the UI is cosmetic, not a security boundary.
// Must run after SessionRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}
