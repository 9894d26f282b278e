package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

func TestGORMOrderRepository_Create_DuplicateSessionConflicts(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	repo := NewGORMOrderRepository(db)

	first := &models.Order{
		Name:                    "Order one",
		UserID:                  "user-1",
		TenantID:                f.store.ID,
		Products:                []models.Product{{ID: "prod-uikit"}},
		TotalAmount:             3000,
		StripeCheckoutSessionID: "cs_dup",
		StripeAccountID:         "acct_pixel",
	}
	assert.NoError(t, repo.Create(first))

	second := &models.Order{
		Name:                    "Order two",
		UserID:                  "user-1",
		TenantID:                f.store.ID,
		TotalAmount:             3000,
		StripeCheckoutSessionID: "cs_dup",
		StripeAccountID:         "acct_pixel",
	}
	err := repo.Create(second)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestGORMOrderRepository_Create_DoesNotRewriteProducts(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	repo := NewGORMOrderRepository(db)

	order := &models.Order{
		Name:                    "Order",
		UserID:                  "user-1",
		TenantID:                f.store.ID,
		Products:                []models.Product{{ID: "prod-uikit"}},
		TotalAmount:             3000,
		StripeCheckoutSessionID: "cs_ref",
	}
	assert.NoError(t, repo.Create(order))

	// The bare {ID} reference must not have blanked the product row.
	var product models.Product
	assert.NoError(t, db.First(&product, "id = ?", "prod-uikit").Error)
	assert.Equal(t, "UI Kit", product.Name)
	assert.Equal(t, 30.0, product.Price)
}

func TestGORMOrderRepository_GetBySessionID(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	repo := NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:                  "user-1",
		TenantID:                f.store.ID,
		StripeCheckoutSessionID: "cs_lookup",
	}
	assert.NoError(t, repo.Create(order))

	found, err := repo.GetBySessionID("cs_lookup")
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.GetBySessionID("cs_unknown")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGORMOrderRepository_GetByID_PreloadsProducts(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	repo := NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:                  "user-1",
		TenantID:                f.store.ID,
		Products:                []models.Product{{ID: "prod-uikit"}, {ID: "prod-font"}},
		StripeCheckoutSessionID: "cs_full",
	}
	assert.NoError(t, repo.Create(order))

	found, err := repo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, found.Products, 2)
	assert.Equal(t, "pixel-goods", found.Tenant.Slug)
}

func TestGORMOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	repo := NewGORMOrderRepository(db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, session := range []string{"cs_a", "cs_b", "cs_c"} {
		order := &models.Order{
			UserID:                  "user-1",
			TenantID:                f.store.ID,
			StripeCheckoutSessionID: session,
		}
		order.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		assert.NoError(t, repo.Create(order))
	}
	foreign := &models.Order{UserID: "user-2", TenantID: f.store.ID, StripeCheckoutSessionID: "cs_foreign"}
	assert.NoError(t, repo.Create(foreign))

	orders, total, err := repo.ListByUser("user-1", 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
	assert.Equal(t, "cs_c", orders[0].StripeCheckoutSessionID)
	assert.Equal(t, "cs_b", orders[1].StripeCheckoutSessionID)
}
