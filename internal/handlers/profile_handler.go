package handlers

import (
	"kirana/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the user profile.
type ProfileHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile routes. All of them need a session.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/user")
	profileRoutes.Get("/profile", h.HandleGetProfile)
	profileRoutes.Put("/profile", h.HandleUpdateProfile)
}

// HandleGetProfile returns the calling user's profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// ProfileUpdateRequest is the body for a contact-info update.
type ProfileUpdateRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	HomeAddress string `json:"home_address" validate:"required"`
}

// HandleUpdateProfile persists the contact fields. Length rules live in the
// user service, shared with the checkout workflow.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, err)
	}

	user, err := h.userService.UpdateContact(currentUser(c).ID, req.PhoneNumber, req.HomeAddress)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(user)
}
