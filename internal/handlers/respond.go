package handlers

import (
	"errors"
	"fmt"
	"log"

	"kirana/internal/models"
	"kirana/internal/repositories"
	"kirana/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUser pulls the authenticated user stored by the session middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// errorResponse maps the service error taxonomy onto HTTP statuses.
// Validation problems are 4xx the user can correct and retry, ErrForbidden
// is access denied, ErrNotFound means the document is no longer available,
// and anything else is a 500 the client may safely retry.
func errorResponse(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrProfileIncomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    "profile_incomplete",
			"message": services.ErrProfileIncomplete.Error(),
		})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidProfile),
		errors.Is(err, services.ErrCategoryName),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrDefaultCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateCategory):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.As(err, &validationErrors):
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
