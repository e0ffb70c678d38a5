package handlers

import (
	"log"

	"kirana/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the draft cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. All of them need a session.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Put("/", h.HandlePutCart)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the caller's cart, empty if none exists yet.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(currentUser(c).ID)
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(cart)
}

// CartPutRequest is the body for a cart overwrite.
type CartPutRequest struct {
	Items []LineItemRequest `json:"items"`
}

// HandlePutCart replaces the caller's cart wholesale. Totals are recomputed
// server-side.
func (h *CartHandler) HandlePutCart(c *fiber.Ctx) error {
	var req CartPutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart, err := h.service.Put(currentUser(c).ID, toLineItems(req.Items))
	if err != nil {
		log.Printf("Error saving cart: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(cart)
}

// HandleClearCart empties the caller's cart. Idempotent.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(currentUser(c).ID); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
