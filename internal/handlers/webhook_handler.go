package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
)

// WebhookHandler receives payment provider webhooks. It is mounted at the
// app level rather than under the versioned API group because the provider
// calls a fixed URL configured in its dashboard.
type WebhookHandler struct {
	service *services.WebhookService
	gateway payments.Gateway
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.WebhookService, gateway payments.Gateway) *WebhookHandler {
	return &WebhookHandler{service: service, gateway: gateway}
}

// RegisterRoutes registers the webhook endpoint on app.
func (h *WebhookHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/stripe/webhooks", h.HandleWebhook)
}

// HandleWebhook verifies the event signature over the raw body and hands the
// event to the service. A failed signature is the caller's fault (400); a
// failed handler is ours (500), which makes the provider retry the delivery.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	event, err := h.gateway.VerifyEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid signature",
		})
	}

	if err := h.service.HandleEvent(event); err != nil {
		log.Printf("Webhook %s (%s) failed: %v", event.ID, event.Type, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "event processing failed",
		})
	}
	return c.JSON(fiber.Map{"received": true})
}
