package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/services"
)

func TestCategories_SeedsTree(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()

	assert.NoError(t, Categories(repo))

	design, err := repo.GetBySlug("design")
	assert.NoError(t, err)
	assert.Nil(t, design.ParentID)
	assert.NotEmpty(t, design.Subcategories)

	uiux, err := repo.GetBySlug("ui-ux")
	assert.NoError(t, err)
	assert.NotNil(t, uiux.ParentID)
	assert.Equal(t, design.ID, *uiux.ParentID)

	parents, err := repo.ListTopLevel()
	assert.NoError(t, err)
	assert.Len(t, parents, len(categories))
}

func TestCategories_Idempotent(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()

	assert.NoError(t, Categories(repo))
	first, err := repo.ListTopLevel()
	assert.NoError(t, err)

	// A second run must not duplicate or error on existing slugs.
	assert.NoError(t, Categories(repo))
	second, err := repo.ListTopLevel()
	assert.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestDemo_SeedsStoreOnce(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	tenantRepo := repositories.NewMockTenantRepository()
	tagRepo := repositories.NewMockTagRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	productRepo := repositories.NewMockProductRepository()
	productService := services.NewProductService(productRepo, repositories.NewMockReviewRepository())

	assert.NoError(t, Categories(categoryRepo))
	assert.NoError(t, Demo(userRepo, tenantRepo, tagRepo, categoryRepo, productService))

	tenant, err := tenantRepo.GetBySlug("demo-store")
	assert.NoError(t, err)

	owner, err := userRepo.GetByUsername("demo-seller")
	assert.NoError(t, err)
	full, err := userRepo.GetByID(owner.ID)
	assert.NoError(t, err)
	assert.Len(t, full.Tenants, 1)
	assert.Equal(t, tenant.ID, full.Tenants[0].ID)

	listing, err := productService.List(catalog.Filter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), listing.Pagination.TotalDocs)

	// Reruns key off the tenant slug and change nothing.
	assert.NoError(t, Demo(userRepo, tenantRepo, tagRepo, categoryRepo, productService))
	listing, err = productService.List(catalog.Filter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), listing.Pagination.TotalDocs)
}
