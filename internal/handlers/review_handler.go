package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes. All require authentication:
// reviews are only readable and writable by buyers on their own purchases.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/product/:productId", h.HandleGetOne)
	reviewRoutes.Post("/multiple", h.HandleGetMultiple)
	reviewRoutes.Post("/", h.HandleCreate)
	reviewRoutes.Patch("/:id", h.HandleUpdate)
}

// HandleGetOne returns the caller's review of a product, or a null body
// when they have not reviewed it yet.
func (h *ReviewHandler) HandleGetOne(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	review, err := h.service.GetOne(user.ID, c.Params("productId"))
	if err != nil {
		log.Printf("Error fetching review for user %s: %v", user.ID, err)
		return respondError(c, "Could not fetch review", err)
	}
	return c.JSON(fiber.Map{"review": review})
}

// GetMultipleRequest asks for the caller's reviews across several products,
// typically one library page at a time.
type GetMultipleRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required"`
}

// HandleGetMultiple returns the caller's reviews keyed by product id.
// Products without a review are simply absent from the map.
func (h *ReviewHandler) HandleGetMultiple(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req GetMultipleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	reviews, err := h.service.GetMultiple(user.ID, req.ProductIDs)
	if err != nil {
		log.Printf("Error fetching reviews for user %s: %v", user.ID, err)
		return respondError(c, "Could not fetch reviews", err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// CreateReviewRequest is the payload for posting a new review.
type CreateReviewRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required,min=3"`
}

// HandleCreate posts a new review. A second review of the same product by
// the same user conflicts.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	review, err := h.service.Create(user.ID, req.ProductID, req.Rating, req.Description)
	if err != nil {
		log.Printf("Error creating review for user %s: %v", user.ID, err)
		return respondError(c, "Could not create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReviewRequest is the payload for editing an existing review.
type UpdateReviewRequest struct {
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required,min=3"`
}

// HandleUpdate edits one of the caller's reviews. Editing someone else's
// review is unauthorized.
func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	review, err := h.service.Update(user.ID, c.Params("id"), req.Rating, req.Description)
	if err != nil {
		log.Printf("Error updating review %s for user %s: %v", c.Params("id"), user.ID, err)
		return respondError(c, "Could not update review", err)
	}
	return c.JSON(review)
}
