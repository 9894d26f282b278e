package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

func checkoutFixture(t *testing.T) (*CheckoutService, *repositories.MockProductRepository, *fakeGateway) {
	t.Helper()

	store := models.Tenant{ID: "tenant-1", Name: "Pixel Goods", Slug: "pixel-goods", StripeAccountID: "acct_pixel"}
	productRepo := repositories.NewMockProductRepository()
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-1", Name: "Icon Pack", Price: 10.00, TenantID: store.ID, Tenant: store,
	}))
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-2", Name: "Font Bundle", Price: 20.00, TenantID: store.ID, Tenant: store,
	}))

	gateway := newFakeGateway()
	service := NewCheckoutService(productRepo, repositories.NewMockUserRepository(), gateway, "https://shop.example.com", 10)
	return service, productRepo, gateway
}

func buyer() *models.User {
	return &models.User{ID: "user-1", Username: "buyer", Email: "buyer@example.com"}
}

func TestCheckoutService_Purchase_LineItemsAndFee(t *testing.T) {
	service, _, gateway := checkoutFixture(t)

	url, err := service.Purchase(buyer(), "pixel-goods", []string{"prod-1", "prod-2"})
	assert.NoError(t, err)
	assert.NotEmpty(t, url)

	assert.Len(t, gateway.createdParams, 1)
	params := gateway.createdParams[0]

	assert.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(1000), params.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2000), params.LineItems[1].UnitAmount)
	assert.Equal(t, "usd", params.LineItems[0].Currency)
	assert.Equal(t, "acct_pixel", params.LineItems[0].Metadata["stripeAccountId"])
	assert.Equal(t, "prod-1", params.LineItems[0].Metadata["id"])

	// 10% of the 3000-cent total.
	assert.Equal(t, int64(300), params.ApplicationFeeAmount)
	assert.Equal(t, "acct_pixel", params.StripeAccount)

	assert.Equal(t, "user-1", params.Metadata["userId"])
	assert.Equal(t, "pixel-goods", params.Metadata["tenantSlug"])
	assert.Equal(t, "tenant-1", params.Metadata["tenantId"])
	assert.Equal(t, "prod-1,prod-2", params.Metadata["productIds"])

	assert.Equal(t, "https://shop.example.com/tenants/pixel-goods/checkout?success=true", params.SuccessURL)
	assert.Equal(t, "https://shop.example.com/tenants/pixel-goods/checkout?cancel=true", params.CancelURL)
}

func TestCheckoutService_Purchase_FractionalPriceRounds(t *testing.T) {
	service, productRepo, gateway := checkoutFixture(t)
	store := models.Tenant{ID: "tenant-1", Slug: "pixel-goods", StripeAccountID: "acct_pixel"}
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-3", Name: "Sticker", Price: 19.99, TenantID: store.ID, Tenant: store,
	}))

	_, err := service.Purchase(buyer(), "pixel-goods", []string{"prod-3"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1999), gateway.createdParams[0].LineItems[0].UnitAmount)
}

func TestCheckoutService_Purchase_EmptyCart(t *testing.T) {
	service, _, _ := checkoutFixture(t)

	_, err := service.Purchase(buyer(), "pixel-goods", nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}

func TestCheckoutService_Purchase_ForeignTenantProduct(t *testing.T) {
	service, productRepo, _ := checkoutFixture(t)
	other := models.Tenant{ID: "tenant-2", Slug: "other-store", StripeAccountID: "acct_other"}
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-x", Name: "Foreign", Price: 5, TenantID: other.ID, Tenant: other,
	}))

	_, err := service.Purchase(buyer(), "pixel-goods", []string{"prod-1", "prod-x"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCheckoutService_Purchase_ArchivedProductRejected(t *testing.T) {
	service, productRepo, _ := checkoutFixture(t)
	store := models.Tenant{ID: "tenant-1", Slug: "pixel-goods", StripeAccountID: "acct_pixel"}
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-gone", Name: "Retired", Price: 5, TenantID: store.ID, Tenant: store, IsArchived: true,
	}))

	_, err := service.Purchase(buyer(), "pixel-goods", []string{"prod-gone"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCheckoutService_Purchase_UnconnectedTenant(t *testing.T) {
	service, productRepo, _ := checkoutFixture(t)
	bare := models.Tenant{ID: "tenant-3", Slug: "bare-store"}
	assert.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-bare", Name: "Unsellable", Price: 5, TenantID: bare.ID, Tenant: bare,
	}))

	_, err := service.Purchase(buyer(), "bare-store", []string{"prod-bare"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCheckoutService_GetProducts_AllFound(t *testing.T) {
	service, _, _ := checkoutFixture(t)

	result, err := service.GetProducts([]string{"prod-1", "prod-2"})
	assert.NoError(t, err)
	assert.Len(t, result.Products, 2)
	assert.Equal(t, 30.00, result.TotalPrice)
	assert.Empty(t, result.MissingIDs)
}

func TestCheckoutService_GetProducts_ReportsMissing(t *testing.T) {
	service, _, _ := checkoutFixture(t)

	result, err := service.GetProducts([]string{"prod-1", "prod-deleted"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	// The partial result still comes back so the cart can prune itself.
	assert.NotNil(t, result)
	assert.Len(t, result.Products, 1)
	assert.Equal(t, []string{"prod-deleted"}, result.MissingIDs)
}

func TestCheckoutService_Verify_NoStore(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	assert.NoError(t, userRepo.Create(&models.User{ID: "user-1", Username: "nobody", Email: "n@example.com"}))
	service := NewCheckoutService(productRepo, userRepo, newFakeGateway(), "https://shop.example.com", 10)

	_, err := service.Verify("user-1")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCheckoutService_Verify_ReturnsOnboardingLink(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	assert.NoError(t, userRepo.Create(&models.User{ID: "user-1", Username: "seller", Email: "s@example.com"}))
	assert.NoError(t, userRepo.AttachTenant("user-1", &models.Tenant{
		ID: "tenant-1", Slug: "pixel-goods", StripeAccountID: "acct_pixel",
	}))
	service := NewCheckoutService(productRepo, userRepo, newFakeGateway(), "https://shop.example.com", 10)

	url, err := service.Verify("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "https://connect.example.com/onboard/acct_pixel", url)
}
