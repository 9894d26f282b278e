package payments

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/account"
	"github.com/stripe/stripe-go/v78/accountlink"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway configures the Stripe SDK with the secret key and returns
// a gateway verifying webhooks with webhookSecret.
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession creates a hosted checkout session in payment mode.
func (g *StripeGateway) CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))
	for _, item := range params.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(item.Name),
					Metadata: item.Metadata,
				},
			},
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(params.CustomerEmail),
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
		LineItems:     lineItems,
		InvoiceCreation: &stripe.CheckoutSessionInvoiceCreationParams{
			Enabled: stripe.Bool(true),
		},
	}
	sessionParams.Metadata = params.Metadata
	if params.ApplicationFeeAmount > 0 {
		sessionParams.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(params.ApplicationFeeAmount),
		}
	}
	if params.StripeAccount != "" {
		sessionParams.SetStripeAccount(params.StripeAccount)
	}

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		AmountTotal: s.AmountTotal,
		Metadata:    s.Metadata,
	}, nil
}

// RetrieveSession re-fetches a session with line_items.data.price.product
// expanded so per-line product metadata is available.
func (g *StripeGateway) RetrieveSession(sessionID, stripeAccount string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items.data.price.product")
	if stripeAccount != "" {
		params.SetStripeAccount(stripeAccount)
	}

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", sessionID, err)
	}

	out := &CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		AmountTotal: s.AmountTotal,
		Metadata:    s.Metadata,
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.LineItems != nil {
		for _, item := range s.LineItems.Data {
			line := LineItem{
				Quantity:   item.Quantity,
				UnitAmount: item.AmountTotal,
			}
			if item.Price != nil && item.Price.Product != nil {
				line.Metadata = item.Price.Product.Metadata
				line.Name = item.Price.Product.Name
			}
			out.LineItems = append(out.LineItems, line)
		}
	}
	return out, nil
}

// VerifyEvent validates the Stripe-Signature header over the raw payload and
// decodes the event object for the types the application handles.
func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	event := &Event{
		ID:      stripeEvent.ID,
		Type:    string(stripeEvent.Type),
		Account: stripeEvent.Account,
	}

	switch event.Type {
	case EventCheckoutSessionCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session from event %s: %w", event.ID, err)
		}
		event.Session = &CheckoutSession{
			ID:          s.ID,
			AmountTotal: s.AmountTotal,
			Metadata:    s.Metadata,
		}
		if s.CustomerDetails != nil {
			event.Session.CustomerEmail = s.CustomerDetails.Email
		}
	case EventAccountUpdated:
		var a stripe.Account
		if err := json.Unmarshal(stripeEvent.Data.Raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode account from event %s: %w", event.ID, err)
		}
		event.Update = &AccountUpdate{
			AccountID:        a.ID,
			DetailsSubmitted: a.DetailsSubmitted,
		}
	}
	return event, nil
}

// CreateAccount provisions an Express connected account for a seller.
func (g *StripeGateway) CreateAccount(email string) (string, error) {
	a, err := account.New(&stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create connected account: %w", err)
	}
	return a.ID, nil
}

// CreateAccountLink returns a single-use onboarding URL.
func (g *StripeGateway) CreateAccountLink(accountID, refreshURL, returnURL string) (string, error) {
	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create account link for %s: %w", accountID, err)
	}
	return link.URL, nil
}
