package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/cart"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// CartHandler exposes the server-side cart. Carts are keyed per user and
// per tenant so checkout can stay single-tenant.
type CartHandler struct {
	store    *cart.Store
	checkout *services.CheckoutService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *cart.Store, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{
		store:    store,
		checkout: checkout,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All require authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/:tenantSlug", h.HandleGet)
	cartRoutes.Post("/:tenantSlug/items", h.HandleAdd)
	cartRoutes.Delete("/:tenantSlug/items/:productId", h.HandleRemove)
	cartRoutes.Post("/:tenantSlug/toggle", h.HandleToggle)
	cartRoutes.Post("/:tenantSlug/sync", h.HandleSync)
	cartRoutes.Delete("/:tenantSlug", h.HandleClear)
	cartRoutes.Delete("/", h.HandleClearAll)
}

// CartItemRequest names the product being added or toggled.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleGet returns the cart's product ids and count for one tenant.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}
	slug := c.Params("tenantSlug")
	ids := h.store.ProductIDs(user.ID, slug)
	return c.JSON(fiber.Map{
		"tenant_slug": slug,
		"product_ids": ids,
		"count":       len(ids),
	})
}

// HandleAdd puts a product in the tenant's cart. Adding a product that is
// already there is a no-op, not an error.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	slug := c.Params("tenantSlug")
	if err := h.store.AddProduct(user.ID, slug, req.ProductID); err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return respondError(c, "Could not update cart", err)
	}
	return c.JSON(fiber.Map{
		"product_ids": h.store.ProductIDs(user.ID, slug),
	})
}

// HandleRemove drops a product from the tenant's cart.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	slug := c.Params("tenantSlug")
	if err := h.store.RemoveProduct(user.ID, slug, c.Params("productId")); err != nil {
		log.Printf("Error removing product %s from cart: %v", c.Params("productId"), err)
		return respondError(c, "Could not update cart", err)
	}
	return c.JSON(fiber.Map{
		"product_ids": h.store.ProductIDs(user.ID, slug),
	})
}

// HandleToggle adds the product if absent, removes it if present, and says
// which happened.
func (h *CartHandler) HandleToggle(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	slug := c.Params("tenantSlug")
	added, err := h.store.ToggleProduct(user.ID, slug, req.ProductID)
	if err != nil {
		log.Printf("Error toggling product %s in cart: %v", req.ProductID, err)
		return respondError(c, "Could not update cart", err)
	}
	return c.JSON(fiber.Map{
		"added":       added,
		"product_ids": h.store.ProductIDs(user.ID, slug),
	})
}

// HandleSync reconciles the cart against the catalog: products that no
// longer resolve are pruned, and the surviving products come back priced.
func (h *CartHandler) HandleSync(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	slug := c.Params("tenantSlug")
	ids := h.store.ProductIDs(user.ID, slug)
	if len(ids) == 0 {
		return c.JSON(fiber.Map{
			"products":    []struct{}{},
			"total_price": 0,
			"pruned_ids":  []string{},
		})
	}

	result, err := h.checkout.GetProducts(ids)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		log.Printf("Error syncing cart for user %s: %v", user.ID, err)
		return respondError(c, "Could not sync cart", err)
	}

	var pruned []string
	if len(result.MissingIDs) > 0 {
		valid := make([]string, 0, len(result.Products))
		for _, p := range result.Products {
			valid = append(valid, p.ID)
		}
		pruned, err = h.store.Prune(user.ID, slug, valid)
		if err != nil {
			log.Printf("Error pruning cart for user %s: %v", user.ID, err)
			return respondError(c, "Could not sync cart", err)
		}
	}
	return c.JSON(fiber.Map{
		"products":    result.Products,
		"total_price": result.TotalPrice,
		"pruned_ids":  pruned,
	})
}

// HandleClear empties the cart for one tenant.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	if err := h.store.ClearCart(user.ID, c.Params("tenantSlug")); err != nil {
		log.Printf("Error clearing cart for user %s: %v", user.ID, err)
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{"cleared": true})
}

// HandleClearAll empties the caller's carts across every tenant.
func (h *CartHandler) HandleClearAll(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	if err := h.store.ClearAllCarts(user.ID); err != nil {
		log.Printf("Error clearing carts for user %s: %v", user.ID, err)
		return respondError(c, "Could not clear carts", err)
	}
	return c.JSON(fiber.Map{"cleared": true})
}
