package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/:id", h.HandleGetOne)
}

// HandleList lists products with filtering, sorting and pagination. All
// filter parameters arrive as query values.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filter := catalog.Filter{
		CategorySlug:  c.Query("category"),
		IsSubcategory: c.QueryBool("is_subcategory"),
		TenantSlug:    c.Query("tenant"),
		Sort:          catalog.Sort(c.Query("sort")),
		Page:          c.QueryInt("page", catalog.DefaultPage),
		Limit:         c.QueryInt("limit", catalog.DefaultLimit),
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid min_price",
			})
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid max_price",
			})
		}
		filter.MaxPrice = &v
	}
	// Repeated ?tags= values.
	if args := c.Context().QueryArgs().PeekMulti("tags"); len(args) > 0 {
		for _, tag := range args {
			filter.Tags = append(filter.Tags, string(tag))
		}
	}

	result, err := h.service.List(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(result)
}

// HandleGetOne retrieves a single product with its review aggregates.
func (h *ProductHandler) HandleGetOne(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetOne(productID)
	if err != nil {
		log.Printf("Error getting product %s: %v", productID, err)
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}
