package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// statusForError maps the service error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrBadRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the standard error envelope for a service error.
func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondValidation writes field-level validation failures the way every
// handler reports them.
func respondValidation(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// currentUser returns the authenticated user placed in locals by the auth
// middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
