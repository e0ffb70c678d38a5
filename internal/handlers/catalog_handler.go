package handlers

import (
	"log"

	"kirana/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for catalog items and categories.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterPublicRoutes registers the read-only catalog routes.
func (h *CatalogHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/items", h.HandleGetItems)
	router.Get("/categories", h.HandleGetCategoryNames)
	router.Post("/seed-items", h.HandleSeedItems)
}

// RegisterAdminRoutes registers the catalog mutation routes. The caller
// mounts these behind the admin middleware.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/items", h.HandleCreateItem)
	router.Put("/items/:id", h.HandleUpdateItem)
	router.Delete("/items/:id", h.HandleDeleteItem)
	router.Get("/categories", h.HandleGetCategories)
	router.Post("/categories", h.HandleCreateCategory)
	router.Delete("/categories/:id", h.HandleDeleteCategory)
}

// HandleGetItems returns the whole catalog.
func (h *CatalogHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems()
	if err != nil {
		log.Printf("Error listing items: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(items)
}

// HandleGetCategoryNames returns the public category filter list.
func (h *CatalogHandler) HandleGetCategoryNames(c *fiber.Ctx) error {
	names, err := h.service.ListCategoryNames()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"categories": names})
}

// HandleSeedItems populates an empty catalog with starter items.
func (h *CatalogHandler) HandleSeedItems(c *fiber.Ctx) error {
	created, err := h.service.SeedItems()
	if err != nil {
		log.Printf("Error seeding items: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"created": created})
}

// HandleCreateItem creates a catalog item.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.CreateItem(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem overwrites an item's fields.
func (h *CatalogHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var in services.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.UpdateItem(c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteItem removes an item from the catalog.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// HandleGetCategories returns the full category records for the admin view.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(categories)
}

// CategoryCreateRequest is the body for creating a category.
type CategoryCreateRequest struct {
	Name string `json:"name"`
}

// HandleCreateCategory adds a custom category.
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory removes a custom category.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
