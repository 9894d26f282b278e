package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/pkg/payments"
)

// CheckoutService builds checkout sessions from carts and prices them.
type CheckoutService struct {
	productRepo        repositories.ProductRepository
	userRepo           repositories.UserRepository
	gateway            payments.Gateway
	appURL             string
	platformFeePercent float64
}

// NewCheckoutService creates a new CheckoutService. platformFeePercent is
// the marketplace's cut of the pre-fee total, e.g. 10 for 10%.
func NewCheckoutService(productRepo repositories.ProductRepository, userRepo repositories.UserRepository, gateway payments.Gateway, appURL string, platformFeePercent float64) *CheckoutService {
	return &CheckoutService{
		productRepo:        productRepo,
		userRepo:           userRepo,
		gateway:            gateway,
		appURL:             appURL,
		platformFeePercent: platformFeePercent,
	}
}

// CheckoutProducts is the cart-sync view of a set of product ids: the
// resolvable products, their combined price, and the ids that no longer
// resolve (archived or deleted since they entered the cart).
type CheckoutProducts struct {
	Products   []models.Product `json:"products"`
	TotalPrice float64          `json:"total_price"`
	MissingIDs []string         `json:"missing_ids"`
}

// GetProducts fetches the cart's products across tenants. When some ids no
// longer resolve it still returns the diff alongside an ErrNotFound-
// wrapping error, so the cart layer can prune and warn.
func (s *CheckoutService) GetProducts(ids []string) (*CheckoutProducts, error) {
	products, err := s.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(products))
	var total float64
	for _, p := range products {
		found[p.ID] = true
		total += p.Price
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	result := &CheckoutProducts{
		Products:   products,
		TotalPrice: total,
		MissingIDs: missing,
	}
	if len(products) != len(ids) {
		return result, fmt.Errorf("%d of %d cart products unavailable: %w", len(missing), len(ids), apperr.ErrNotFound)
	}
	return result, nil
}

// Purchase converts one tenant's cart into a hosted checkout session and
// returns its redirect URL. The caller performs a full-page redirect; the
// payment UI is hosted off-domain.
func (s *CheckoutService) Purchase(user *models.User, tenantSlug string, productIDs []string) (string, error) {
	if len(productIDs) == 0 {
		return "", fmt.Errorf("product list is empty: %w", apperr.ErrBadRequest)
	}

	products, err := s.productRepo.GetForCheckout(tenantSlug, productIDs)
	if err != nil {
		return "", err
	}
	// A count mismatch means the cart held ids from another tenant,
	// archived products, or ids that never existed. Which ids were bad is
	// deliberately not disclosed here; the cart-sync path recovers that.
	if len(products) != len(productIDs) {
		return "", fmt.Errorf("some products were not found or do not belong to tenant %q: %w", tenantSlug, apperr.ErrNotFound)
	}

	tenant := products[0].Tenant
	if tenant.StripeAccountID == "" {
		return "", fmt.Errorf("tenant %q has no connected payment account: %w", tenantSlug, apperr.ErrNotFound)
	}

	lineItems := make([]payments.LineItem, 0, len(products))
	var totalAmount int64
	for _, p := range products {
		unitAmount := int64(math.Round(p.Price * 100))
		totalAmount += unitAmount
		lineItems = append(lineItems, payments.LineItem{
			Quantity:   1,
			UnitAmount: unitAmount,
			Currency:   "usd",
			Name:       p.Name,
			// Per-line metadata lets the webhook recover which products
			// were bought from the expanded line items alone.
			Metadata: map[string]string{
				"stripeAccountId": tenant.StripeAccountID,
				"id":              p.ID,
				"name":            p.Name,
				"price":           strconv.FormatFloat(p.Price, 'f', -1, 64),
			},
		})
	}

	platformFee := int64(math.Round(float64(totalAmount) * s.platformFeePercent / 100))

	session, err := s.gateway.CreateCheckoutSession(payments.CheckoutParams{
		CustomerEmail: user.Email,
		SuccessURL:    fmt.Sprintf("%s/tenants/%s/checkout?success=true", s.appURL, tenantSlug),
		CancelURL:     fmt.Sprintf("%s/tenants/%s/checkout?cancel=true", s.appURL, tenantSlug),
		LineItems:     lineItems,
		Metadata: map[string]string{
			"userId":     user.ID,
			"tenantSlug": tenantSlug,
			"tenantId":   tenant.ID,
			"productIds": strings.Join(productIDs, ","),
		},
		StripeAccount:        tenant.StripeAccountID,
		ApplicationFeeAmount: platformFee,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("checkout session %s has no redirect URL", session.ID)
	}
	return session.URL, nil
}

// Verify returns a fresh onboarding link for the seller's connected
// account, used to (re)submit payment details.
func (s *CheckoutService) Verify(userID string) (string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if len(user.Tenants) == 0 {
		return "", fmt.Errorf("user %s owns no store: %w", userID, apperr.ErrNotFound)
	}
	tenant := user.Tenants[0]
	if tenant.StripeAccountID == "" {
		return "", fmt.Errorf("store %q has no connected payment account: %w", tenant.Slug, apperr.ErrNotFound)
	}

	url, err := s.gateway.CreateAccountLink(
		tenant.StripeAccountID,
		s.appURL+"/admin",
		s.appURL+"/admin",
	)
	if err != nil {
		return "", fmt.Errorf("failed to create onboarding link: %w", err)
	}
	return url, nil
}
