package handlers

import (
	"log"

	"kirana/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders. Placing and editing both
// run through the checkout workflow; reads, deletes and the admin confirm
// go through the order service.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// RegisterRoutes registers the order routes. All of them need a session.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Put("/:id", h.HandleEditOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// RegisterAdminRoutes registers the admin order routes. The caller mounts
// these behind the admin middleware.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleGetAllOrders)
	router.Patch("/orders/:id/confirm", h.HandleConfirmOrder)
}

// CheckoutRequest is the body for placing or editing an order. GrandTotal
// is accepted for wire compatibility but recomputed server-side.
// PhoneNumber and HomeAddress carry the values requested when the profile
// is incomplete.
type CheckoutRequest struct {
	Items       []LineItemRequest `json:"items"`
	GrandTotal  float64           `json:"grand_total"`
	PhoneNumber string            `json:"phone_number"`
	HomeAddress string            `json:"home_address"`
}

// HandleGetOrders returns the caller's own orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListByUser(currentUser(c).ID)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}

// HandlePlaceOrder runs the checkout workflow's create path.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.checkout.Checkout(currentUser(c), services.CheckoutInput{
		Items:       toLineItems(req.Items),
		PhoneNumber: req.PhoneNumber,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleEditOrder runs the checkout workflow's edit path against the order
// in the URL.
func (h *OrderHandler) HandleEditOrder(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.checkout.Checkout(currentUser(c), services.CheckoutInput{
		Items:       toLineItems(req.Items),
		PhoneNumber: req.PhoneNumber,
		HomeAddress: req.HomeAddress,
		Edit:        &services.EditSession{OrderID: c.Params("id")},
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order, allowed for the owner and admins.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.orders.Delete(currentUser(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}

// HandleGetAllOrders returns every order for the admin dashboard.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(currentUser(c))
	if err != nil {
		log.Printf("Error listing all orders: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(orders)
}

// HandleConfirmOrder transitions an order to confirmed. Idempotent.
func (h *OrderHandler) HandleConfirmOrder(c *fiber.Ctx) error {
	order, err := h.orders.Confirm(currentUser(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}
