package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

func productServiceFixture(t *testing.T) (*ProductService, *repositories.MockProductRepository, *repositories.MockReviewRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	reviewRepo := repositories.NewMockReviewRepository()

	store := models.Tenant{ID: "tenant-1", Slug: "pixel-goods"}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []models.Product{
		{ID: "prod-1", Name: "Icon Pack", Price: 10, Tenant: store},
		{ID: "prod-2", Name: "Font Bundle", Price: 20, Tenant: store},
		{ID: "prod-3", Name: "UI Kit", Price: 30, Tenant: store},
	} {
		p.Model = gorm.Model{CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		assert.NoError(t, productRepo.Create(&p))
	}
	return NewProductService(productRepo, reviewRepo), productRepo, reviewRepo
}

func TestProductService_List_JoinsRatingAggregates(t *testing.T) {
	service, _, reviewRepo := productServiceFixture(t)
	assert.NoError(t, reviewRepo.Create(&models.Review{UserID: "u1", ProductID: "prod-1", Rating: 5}))
	assert.NoError(t, reviewRepo.Create(&models.Review{UserID: "u2", ProductID: "prod-1", Rating: 4}))

	result, err := service.List(catalog.Filter{})
	assert.NoError(t, err)
	assert.Len(t, result.Products, 3)

	byID := map[string]ProductWithRatings{}
	for _, p := range result.Products {
		byID[p.ID] = p
	}
	assert.Equal(t, 2, byID["prod-1"].ReviewCount)
	assert.Equal(t, 4.5, byID["prod-1"].ReviewRating)

	// Unreviewed products carry zeroed aggregates, not nulls.
	assert.Equal(t, 0, byID["prod-2"].ReviewCount)
	assert.Equal(t, 0.0, byID["prod-2"].ReviewRating)
	assert.NotNil(t, byID["prod-2"].RatingDistribution)
}

func TestProductService_List_DefaultSortIsNewestFirst(t *testing.T) {
	service, _, _ := productServiceFixture(t)

	result, err := service.List(catalog.Filter{})
	assert.NoError(t, err)
	assert.Equal(t, "prod-3", result.Products[0].ID)
	assert.Equal(t, "prod-1", result.Products[2].ID)
}

func TestProductService_List_PriceSortAndPagination(t *testing.T) {
	service, _, _ := productServiceFixture(t)

	result, err := service.List(catalog.Filter{Sort: catalog.SortPriceDesc, Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, result.Products, 2)
	assert.Equal(t, "prod-3", result.Products[0].ID)
	assert.Equal(t, "prod-2", result.Products[1].ID)

	assert.Equal(t, int64(3), result.Pagination.TotalDocs)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNextPage)
	assert.False(t, result.Pagination.HasPrevPage)
	assert.Equal(t, 2, *result.Pagination.NextPage)
}

func TestProductService_GetOne_WithAggregates(t *testing.T) {
	service, _, reviewRepo := productServiceFixture(t)
	assert.NoError(t, reviewRepo.Create(&models.Review{UserID: "u1", ProductID: "prod-2", Rating: 3}))

	product, err := service.GetOne("prod-2")
	assert.NoError(t, err)
	assert.Equal(t, "Font Bundle", product.Name)
	assert.Equal(t, 1, product.ReviewCount)
	assert.Equal(t, 3.0, product.ReviewRating)
}
