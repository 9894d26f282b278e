package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
)

func completedSessionEvent(gateway *fakeGateway) *payments.Event {
	session, _ := gateway.CreateCheckoutSession(payments.CheckoutParams{
		CustomerEmail: "buyer@example.com",
		LineItems: []payments.LineItem{
			{
				Quantity:   1,
				UnitAmount: 1000,
				Currency:   "usd",
				Name:       "Icon Pack",
				Metadata:   map[string]string{"stripeAccountId": "acct_pixel", "id": "prod-1"},
			},
			{
				Quantity:   1,
				UnitAmount: 2000,
				Currency:   "usd",
				Name:       "Font Bundle",
				Metadata:   map[string]string{"stripeAccountId": "acct_pixel", "id": "prod-2"},
			},
		},
		Metadata: map[string]string{
			"userId":     "user-1",
			"tenantSlug": "pixel-goods",
			"tenantId":   "tenant-1",
			"productIds": "prod-1,prod-2",
		},
	})
	return &payments.Event{
		ID:      "evt_1",
		Type:    payments.EventCheckoutSessionCompleted,
		Account: "acct_pixel",
		Session: session,
	}
}

func webhookFixture() (*WebhookService, *repositories.MockOrderRepository, *fakeGateway, *fakePublisher) {
	orderRepo := repositories.NewMockOrderRepository()
	tenantRepo := repositories.NewMockTenantRepository()
	gateway := newFakeGateway()
	publisher := &fakePublisher{}
	return NewWebhookService(orderRepo, tenantRepo, gateway, publisher), orderRepo, gateway, publisher
}

func TestWebhookService_CheckoutCompleted_CreatesOrder(t *testing.T) {
	service, orderRepo, gateway, publisher := webhookFixture()
	event := completedSessionEvent(gateway)

	err := service.HandleEvent(event)
	assert.NoError(t, err)

	order, err := orderRepo.GetBySessionID(event.Session.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "tenant-1", order.TenantID)
	assert.Equal(t, int64(3000), order.TotalAmount)
	assert.Equal(t, "acct_pixel", order.StripeAccountID)
	assert.Len(t, order.Products, 2)

	assert.Len(t, publisher.events, 1)
	assert.Equal(t, order.ID, publisher.events[0].OrderID)
	assert.Equal(t, []string{"prod-1", "prod-2"}, publisher.events[0].ProductIDs)
}

func TestWebhookService_CheckoutCompleted_DuplicateDelivery(t *testing.T) {
	service, orderRepo, gateway, publisher := webhookFixture()
	event := completedSessionEvent(gateway)

	assert.NoError(t, service.HandleEvent(event))
	assert.NoError(t, service.HandleEvent(event))
	assert.NoError(t, service.HandleEvent(event))

	// Exactly one order regardless of redelivery count.
	orders, total, err := orderRepo.ListByUser("user-1", 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders, 1)
	assert.Len(t, publisher.events, 1)
}

func TestWebhookService_CheckoutCompleted_ConflictOnInsertIsIdempotentSuccess(t *testing.T) {
	service, orderRepo, gateway, _ := webhookFixture()
	event := completedSessionEvent(gateway)

	// Simulate losing the insert race: another delivery slipped an order in
	// between our pre-check and our insert.
	assert.NoError(t, orderRepo.Create(&models.Order{
		UserID:                  "user-1",
		TenantID:                "tenant-1",
		StripeCheckoutSessionID: event.Session.ID,
	}))

	err := service.HandleEvent(event)
	assert.NoError(t, err)
}

func TestWebhookService_CheckoutCompleted_MissingMetadata(t *testing.T) {
	service, _, gateway, _ := webhookFixture()
	event := completedSessionEvent(gateway)
	delete(event.Session.Metadata, "tenantId")

	err := service.HandleEvent(event)
	assert.Error(t, err)
}

func TestWebhookService_CheckoutCompleted_NoSession(t *testing.T) {
	service, _, _, _ := webhookFixture()

	err := service.HandleEvent(&payments.Event{
		ID:   "evt_broken",
		Type: payments.EventCheckoutSessionCompleted,
	})
	assert.Error(t, err)
}

func TestWebhookService_CheckoutCompleted_PublishFailureDoesNotFailEvent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := newFakeGateway()
	publisher := &fakePublisher{err: assert.AnError}
	service := NewWebhookService(orderRepo, repositories.NewMockTenantRepository(), gateway, publisher)
	event := completedSessionEvent(gateway)

	err := service.HandleEvent(event)
	assert.NoError(t, err)

	_, err = orderRepo.GetBySessionID(event.Session.ID)
	assert.NoError(t, err)
}

func TestWebhookService_CheckoutCompleted_NilPublisher(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := newFakeGateway()
	service := NewWebhookService(orderRepo, repositories.NewMockTenantRepository(), gateway, nil)
	event := completedSessionEvent(gateway)

	assert.NoError(t, service.HandleEvent(event))
}

func TestWebhookService_AccountUpdated_FlipsFlag(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	tenantRepo := repositories.NewMockTenantRepository()
	assert.NoError(t, tenantRepo.Create(&models.Tenant{
		Name: "Pixel Goods", Slug: "pixel-goods", StripeAccountID: "acct_pixel",
	}))
	service := NewWebhookService(orderRepo, tenantRepo, newFakeGateway(), nil)

	err := service.HandleEvent(&payments.Event{
		ID:     "evt_acct",
		Type:   payments.EventAccountUpdated,
		Update: &payments.AccountUpdate{AccountID: "acct_pixel", DetailsSubmitted: true},
	})
	assert.NoError(t, err)

	tenant, err := tenantRepo.GetBySlug("pixel-goods")
	assert.NoError(t, err)
	assert.True(t, tenant.StripeDetailsSubmitted)
}

func TestWebhookService_AccountUpdated_UnknownAccountIgnored(t *testing.T) {
	service, _, _, _ := webhookFixture()

	err := service.HandleEvent(&payments.Event{
		ID:     "evt_acct",
		Type:   payments.EventAccountUpdated,
		Update: &payments.AccountUpdate{AccountID: "acct_stranger", DetailsSubmitted: true},
	})
	assert.NoError(t, err)
}

func TestWebhookService_UnhandledTypeAcknowledged(t *testing.T) {
	service, _, _, _ := webhookFixture()

	err := service.HandleEvent(&payments.Event{ID: "evt_other", Type: "invoice.paid"})
	assert.NoError(t, err)
}
