package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/rabbitmq"
)

// OrderEventPublisher is the messaging surface the reconciler needs; the
// RabbitMQ client satisfies it.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error
}

// WebhookService reconciles asynchronous payment-platform events into
// application state. Its one hard invariant: exactly one order per
// completed checkout session, no matter how often the event is delivered.
type WebhookService struct {
	orderRepo  repositories.OrderRepository
	tenantRepo repositories.TenantRepository
	gateway    payments.Gateway
	publisher  OrderEventPublisher
}

// NewWebhookService creates a new WebhookService. publisher may be nil when
// messaging is disabled.
func NewWebhookService(orderRepo repositories.OrderRepository, tenantRepo repositories.TenantRepository, gateway payments.Gateway, publisher OrderEventPublisher) *WebhookService {
	return &WebhookService{
		orderRepo:  orderRepo,
		tenantRepo: tenantRepo,
		gateway:    gateway,
		publisher:  publisher,
	}
}

// HandleEvent processes one verified event. Unrecognized event types are
// acknowledged without processing so the platform does not retry them.
func (s *WebhookService) HandleEvent(event *payments.Event) error {
	switch event.Type {
	case payments.EventCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(event)
	case payments.EventAccountUpdated:
		return s.handleAccountUpdated(event)
	default:
		log.Printf("Ignoring unhandled event type %s (%s)", event.Type, event.ID)
		return nil
	}
}

func (s *WebhookService) handleAccountUpdated(event *payments.Event) error {
	if event.Update == nil {
		return fmt.Errorf("account.updated event %s carries no account data", event.ID)
	}
	err := s.tenantRepo.SetDetailsSubmitted(event.Update.AccountID, event.Update.DetailsSubmitted)
	if errors.Is(err, apperr.ErrNotFound) {
		// Accounts not owned by any tenant are none of our business.
		log.Printf("No tenant for account %s, skipping", event.Update.AccountID)
		return nil
	}
	return err
}

func (s *WebhookService) handleCheckoutCompleted(event *payments.Event) error {
	if event.Session == nil {
		return fmt.Errorf("checkout.session.completed event %s carries no session", event.ID)
	}
	session := event.Session

	meta := session.Metadata
	userID := meta["userId"]
	tenantSlug := meta["tenantSlug"]
	tenantID := meta["tenantId"]
	productIDsCSV := meta["productIds"]
	if userID == "" || tenantSlug == "" || tenantID == "" || productIDsCSV == "" {
		return fmt.Errorf("missing required metadata in session %s", session.ID)
	}

	// Cheap pre-check to skip most redeliveries. The unique index on the
	// session id is what actually closes the race between concurrent
	// deliveries.
	if _, err := s.orderRepo.GetBySessionID(session.ID); err == nil {
		log.Printf("Order for session %s already exists, skipping", session.ID)
		return nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	// Re-fetch the session with line items expanded; per-item data is not
	// trusted from the webhook payload alone.
	expanded, err := s.gateway.RetrieveSession(session.ID, event.Account)
	if err != nil {
		return err
	}
	if len(expanded.LineItems) == 0 {
		return fmt.Errorf("no line items found for session %s", session.ID)
	}

	var products []models.Product
	for _, item := range expanded.LineItems {
		if id := item.Metadata["id"]; id != "" {
			products = append(products, models.Product{ID: id})
		}
	}
	if len(products) == 0 {
		return fmt.Errorf("no product ids recoverable from session %s line items", session.ID)
	}

	stripeAccountID := event.Account
	if stripeAccountID == "" {
		stripeAccountID = expanded.LineItems[0].Metadata["stripeAccountId"]
	}

	order := &models.Order{
		Name:                    fmt.Sprintf("Order for %s - %s", expanded.CustomerEmail, session.ID),
		UserID:                  userID,
		TenantID:                tenantID,
		Products:                products,
		TotalAmount:             expanded.AmountTotal,
		StripeCheckoutSessionID: session.ID,
		StripeAccountID:         stripeAccountID,
	}
	if err := s.orderRepo.Create(order); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// A concurrent delivery won the insert. The order exists,
			// which is all this handler promises.
			log.Printf("Order for session %s created concurrently, skipping", session.ID)
			return nil
		}
		return err
	}
	log.Printf("Order %s created for session %s", order.ID, session.ID)

	if s.publisher != nil {
		evt := rabbitmq.OrderCreatedEvent{
			OrderID:           order.ID,
			UserID:            userID,
			TenantID:          tenantID,
			TenantSlug:        tenantSlug,
			ProductIDs:        strings.Split(productIDsCSV, ","),
			TotalAmount:       order.TotalAmount,
			CheckoutSessionID: session.ID,
		}
		if err := s.publisher.PublishOrderCreated(evt); err != nil {
			// Fan-out is best effort; the order is already durable.
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}
	return nil
}
