package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	reviews := make([]models.Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = models.Review{Rating: r}
	}
	return reviews
}

func TestAggregateRatings_Empty(t *testing.T) {
	summary := AggregateRatings(nil)

	assert.Equal(t, 0, summary.ReviewCount)
	assert.Equal(t, 0.0, summary.ReviewRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.RatingDistribution)
}

func TestAggregateRatings_Mean(t *testing.T) {
	summary := AggregateRatings(reviewsWithRatings(5, 5, 1))

	assert.Equal(t, 3, summary.ReviewCount)
	// (5+5+1)/3 = 3.666..., rounded to one decimal.
	assert.Equal(t, 3.7, summary.ReviewRating)
	assert.Equal(t, 67, summary.RatingDistribution[5])
	assert.Equal(t, 33, summary.RatingDistribution[1])
	assert.Equal(t, 0, summary.RatingDistribution[2])
	assert.Equal(t, 0, summary.RatingDistribution[3])
	assert.Equal(t, 0, summary.RatingDistribution[4])
}

func TestAggregateRatings_SingleReview(t *testing.T) {
	summary := AggregateRatings(reviewsWithRatings(4))

	assert.Equal(t, 1, summary.ReviewCount)
	assert.Equal(t, 4.0, summary.ReviewRating)
	assert.Equal(t, 100, summary.RatingDistribution[4])
}

func TestAggregateRatings_OrderIndependent(t *testing.T) {
	a := AggregateRatings(reviewsWithRatings(1, 2, 3, 4, 5))
	b := AggregateRatings(reviewsWithRatings(5, 3, 1, 4, 2))

	assert.Equal(t, a, b)
}

func TestAggregateRatings_DistributionSumsNear100(t *testing.T) {
	summary := AggregateRatings(reviewsWithRatings(1, 2, 3, 4, 5, 5, 5))

	sum := 0
	for star := 1; star <= 5; star++ {
		sum += summary.RatingDistribution[star]
	}
	// Independent per-bucket rounding can drift a point or two off 100.
	assert.InDelta(t, 100, sum, 2)
}

func TestAggregateRatings_OutOfRangeCountsButNotDistributed(t *testing.T) {
	summary := AggregateRatings(reviewsWithRatings(5, 7))

	assert.Equal(t, 2, summary.ReviewCount)
	assert.Equal(t, 6.0, summary.ReviewRating)
	// The 7 is absent from every bucket, so the distribution covers only
	// half of the reviews.
	assert.Equal(t, 50, summary.RatingDistribution[5])
	sum := 0
	for star := 1; star <= 5; star++ {
		sum += summary.RatingDistribution[star]
	}
	assert.Equal(t, 50, sum)
}

func newReviewServiceWithProduct(t *testing.T, productID string) (*ReviewService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	err := productRepo.Create(&models.Product{ID: productID, Name: "E-Book", Price: 20})
	assert.NoError(t, err)
	return NewReviewService(repositories.NewMockReviewRepository(), productRepo), productRepo
}

func TestReviewService_CreateAndGetOne(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	created, err := service.Create("user-1", "prod-1", 5, "Exactly what I needed")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 5, created.Rating)

	review, err := service.GetOne("user-1", "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, review.ID)
}

func TestReviewService_GetOne_NoneYet(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	review, err := service.GetOne("user-1", "prod-1")
	assert.NoError(t, err)
	assert.Nil(t, review)
}

func TestReviewService_GetOne_UnknownProduct(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	_, err := service.GetOne("user-1", "missing")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestReviewService_Create_DuplicateConflicts(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	_, err := service.Create("user-1", "prod-1", 5, "First impressions")
	assert.NoError(t, err)

	_, err = service.Create("user-1", "prod-1", 2, "Changed my mind")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestReviewService_Create_DifferentUsersAllowed(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	_, err := service.Create("user-1", "prod-1", 5, "Loved it")
	assert.NoError(t, err)
	_, err = service.Create("user-2", "prod-1", 3, "It was fine")
	assert.NoError(t, err)
}

func TestReviewService_Update_AuthorOnly(t *testing.T) {
	service, _ := newReviewServiceWithProduct(t, "prod-1")

	created, err := service.Create("user-1", "prod-1", 4, "Pretty good")
	assert.NoError(t, err)

	_, err = service.Update("user-2", created.ID, 1, "Not my review")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	updated, err := service.Update("user-1", created.ID, 5, "Even better on reread")
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Even better on reread", updated.Description)
}

func TestReviewService_GetMultiple(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	for _, id := range []string{"prod-1", "prod-2", "prod-3"} {
		assert.NoError(t, productRepo.Create(&models.Product{ID: id, Name: id, Price: 10}))
	}
	service := NewReviewService(repositories.NewMockReviewRepository(), productRepo)

	_, err := service.Create("user-1", "prod-1", 5, "Great")
	assert.NoError(t, err)
	_, err = service.Create("user-1", "prod-3", 2, "Meh")
	assert.NoError(t, err)
	_, err = service.Create("user-2", "prod-2", 4, "Someone else's")
	assert.NoError(t, err)

	reviews, err := service.GetMultiple("user-1", []string{"prod-1", "prod-2", "prod-3"})
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews["prod-1"].Rating)
	assert.Equal(t, 2, reviews["prod-3"].Rating)
	_, ok := reviews["prod-2"]
	assert.False(t, ok)
}
