package services

import (
	"fmt"

	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/rabbitmq"
)

// fakeGateway is an in-memory payments.Gateway. Sessions created through it
// are retrievable afterwards, which is enough to drive the checkout and
// webhook flows end to end in tests.
type fakeGateway struct {
	sessions       map[string]*payments.CheckoutSession
	createdParams  []payments.CheckoutParams
	accountCounter int
	createErr      error
	retrieveErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payments.CheckoutSession)}
}

func (g *fakeGateway) CreateCheckoutSession(params payments.CheckoutParams) (*payments.CheckoutSession, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdParams = append(g.createdParams, params)

	var total int64
	for _, item := range params.LineItems {
		total += item.UnitAmount * item.Quantity
	}
	id := fmt.Sprintf("cs_test_%d", len(g.sessions)+1)
	session := &payments.CheckoutSession{
		ID:            id,
		URL:           "https://checkout.example.com/" + id,
		AmountTotal:   total,
		CustomerEmail: params.CustomerEmail,
		Metadata:      params.Metadata,
		LineItems:     params.LineItems,
	}
	g.sessions[id] = session
	return session, nil
}

func (g *fakeGateway) RetrieveSession(sessionID, stripeAccount string) (*payments.CheckoutSession, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	session, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s", sessionID)
	}
	return session, nil
}

func (g *fakeGateway) VerifyEvent(payload []byte, signatureHeader string) (*payments.Event, error) {
	return nil, fmt.Errorf("not implemented in fake")
}

func (g *fakeGateway) CreateAccount(email string) (string, error) {
	g.accountCounter++
	return fmt.Sprintf("acct_test_%d", g.accountCounter), nil
}

func (g *fakeGateway) CreateAccountLink(accountID, refreshURL, returnURL string) (string, error) {
	return "https://connect.example.com/onboard/" + accountID, nil
}

// fakePublisher records published order events.
type fakePublisher struct {
	events []rabbitmq.OrderCreatedEvent
	err    error
}

func (p *fakePublisher) PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
