// Package payments wraps the hosted payment platform (Stripe) behind a small
// gateway interface so services and tests never touch the SDK directly.
package payments

// LineItem is one priced line of a checkout session. UnitAmount is in minor
// currency units; Metadata is attached to the line's product so the webhook
// can recover per-item provenance without a second database round trip.
type LineItem struct {
	Quantity   int64
	UnitAmount int64
	Currency   string
	Name       string
	Metadata   map[string]string
}

// CheckoutParams describes one checkout session to create. StripeAccount
// scopes the session to the tenant's connected account;
// ApplicationFeeAmount is the marketplace's cut, attached to the payment
// intent.
type CheckoutParams struct {
	CustomerEmail        string
	SuccessURL           string
	CancelURL            string
	LineItems            []LineItem
	Metadata             map[string]string
	StripeAccount        string
	ApplicationFeeAmount int64
}

// CheckoutSession is the subset of a Stripe checkout session the
// application consumes. AmountTotal is in minor currency units.
type CheckoutSession struct {
	ID            string
	URL           string
	AmountTotal   int64
	CustomerEmail string
	Metadata      map[string]string
	LineItems     []LineItem
}

// Event types the webhook reconciler cares about.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventAccountUpdated           = "account.updated"
)

// AccountUpdate carries the fields of an account.updated event the
// application consumes.
type AccountUpdate struct {
	AccountID        string
	DetailsSubmitted bool
}

// Event is a verified webhook event. Exactly one of Session or Account is
// set, matching Type; other event types carry neither and are acknowledged
// without processing.
type Event struct {
	ID      string
	Type    string
	Account string
	Session *CheckoutSession
	Update  *AccountUpdate
}

// Gateway is the payment-platform surface the marketplace depends on.
type Gateway interface {
	// CreateCheckoutSession creates a hosted checkout session and returns
	// its id and redirect URL.
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
	// RetrieveSession re-fetches a session with line items expanded,
	// scoped to the connected account the session was created on.
	RetrieveSession(sessionID, stripeAccount string) (*CheckoutSession, error)
	// VerifyEvent checks the webhook signature over the raw body and
	// parses the event. A signature failure is an error.
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)
	// CreateAccount provisions a connected account for a new tenant and
	// returns its id.
	CreateAccount(email string) (string, error)
	// CreateAccountLink returns a single-use onboarding URL for a
	// connected account.
	CreateAccountLink(accountID, refreshURL, returnURL string) (string, error)
}
