package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// CatalogHandler serves the category tree, tags and tenant storefront
// lookups.
type CatalogHandler struct {
	categoryService *services.CategoryService
	tagService      *services.TagService
	tenantService   *services.TenantService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(categoryService *services.CategoryService, tagService *services.TagService, tenantService *services.TenantService) *CatalogHandler {
	return &CatalogHandler{
		categoryService: categoryService,
		tagService:      tagService,
		tenantService:   tenantService,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/tags", h.HandleGetTags)
	router.Get("/tenants/:slug", h.HandleGetTenant)
}

// HandleGetCategories returns the full two-level category tree.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleGetTags returns one page of tags.
func (h *CatalogHandler) HandleGetTags(c *fiber.Ctx) error {
	result, err := h.tagService.GetAll(c.QueryInt("cursor", 1), c.QueryInt("limit", 10))
	if err != nil {
		log.Printf("Error getting tags: %v", err)
		return respondError(c, "Could not retrieve tags", err)
	}
	return c.JSON(result)
}

// HandleGetTenant resolves one storefront by slug.
func (h *CatalogHandler) HandleGetTenant(c *fiber.Ctx) error {
	slug := c.Params("slug")
	tenant, err := h.tenantService.GetBySlug(slug)
	if err != nil {
		log.Printf("Error getting tenant %s: %v", slug, err)
		return respondError(c, "Could not retrieve tenant", err)
	}
	return c.JSON(tenant)
}
