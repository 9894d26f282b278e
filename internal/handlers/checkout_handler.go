package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes. The product lookup is
// public so anonymous carts can price themselves; purchase and verify need
// an authenticated caller.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/products", h.HandleGetProducts)
	checkoutRoutes.Post("/purchase", auth, h.HandlePurchase)
	checkoutRoutes.Post("/verify", auth, h.HandleVerify)
}

// GetProductsRequest carries the cart's product ids for the sync lookup.
type GetProductsRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// HandleGetProducts resolves the cart's products across tenants. When some
// ids no longer resolve the 404 response still carries the missing-id diff
// so the cart can prune itself.
func (h *CheckoutHandler) HandleGetProducts(c *fiber.Ctx) error {
	var req GetProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	result, err := h.service.GetProducts(req.IDs)
	if err != nil {
		log.Printf("Error fetching checkout products: %v", err)
		if errors.Is(err, apperr.ErrNotFound) && result != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message":     "Product not found",
				"missing_ids": result.MissingIDs,
			})
		}
		return respondError(c, "Could not fetch products", err)
	}
	return c.JSON(result)
}

// PurchaseRequest carries one tenant's cart into checkout.
type PurchaseRequest struct {
	TenantSlug string   `json:"tenant_slug" validate:"required,min=1"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

// HandlePurchase creates the hosted checkout session and returns its
// redirect URL. The client performs a full-page redirect to it.
func (h *CheckoutHandler) HandlePurchase(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	url, err := h.service.Purchase(user, req.TenantSlug, req.ProductIDs)
	if err != nil {
		log.Printf("Error creating checkout session for user %s: %v", user.ID, err)
		return respondError(c, "Could not create checkout session", err)
	}
	return c.JSON(fiber.Map{"url": url})
}

// HandleVerify returns a fresh onboarding link for the seller's connected
// account.
func (h *CheckoutHandler) HandleVerify(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	url, err := h.service.Verify(user.ID)
	if err != nil {
		log.Printf("Error creating onboarding link for user %s: %v", user.ID, err)
		return respondError(c, "Could not create onboarding link", err)
	}
	return c.JSON(fiber.Map{"url": url})
}
