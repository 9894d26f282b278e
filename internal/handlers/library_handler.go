package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// LibraryHandler serves the buyer's purchased products.
type LibraryHandler struct {
	service *services.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(service *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// RegisterRoutes registers the library routes. All require authentication.
func (h *LibraryHandler) RegisterRoutes(router fiber.Router) {
	libraryRoutes := router.Group("/library")
	libraryRoutes.Get("/", h.HandleGetAll)
	libraryRoutes.Get("/:orderId", h.HandleGetOne)
}

// HandleGetAll lists the caller's orders, newest first.
func (h *LibraryHandler) HandleGetAll(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	cursor, _ := strconv.Atoi(c.Query("cursor", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(catalog.DefaultLimit)))

	page, err := h.service.GetAll(user.ID, cursor, limit)
	if err != nil {
		log.Printf("Error fetching library for user %s: %v", user.ID, err)
		return respondError(c, "Could not fetch library", err)
	}
	return c.JSON(page)
}

// HandleGetOne returns one of the caller's orders with its products. An
// order that belongs to someone else is indistinguishable from one that
// does not exist.
func (h *LibraryHandler) HandleGetOne(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	order, err := h.service.GetOne(user.ID, c.Params("orderId"))
	if err != nil {
		return respondError(c, "Order not found", err)
	}
	return c.JSON(order)
}
