package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

// RatingSummary holds the aggregate rating metrics of one product.
type RatingSummary struct {
	ReviewCount  int     `json:"review_count"`
	ReviewRating float64 `json:"review_rating"`
	// RatingDistribution maps each star value 1..5 to the integer percent
	// of reviews carrying it.
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// AggregateRatings computes the rating metrics for a collection of reviews.
// It is order-independent: any permutation of the same multiset yields the
// same output. An empty input yields count 0, rating 0 and an all-zero
// distribution rather than nil.
//
// A rating outside 1..5 counts toward ReviewCount and the mean but is left
// out of the distribution, so the distribution may account for less than
// 100% of ReviewCount. That mirrors the long-standing behavior this was
// built from; ratings are validated to 1..5 on write, so in practice such
// values only enter through legacy rows.
func AggregateRatings(reviews []models.Review) RatingSummary {
	summary := RatingSummary{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	sum := 0
	counts := map[int]int{}
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			counts[r.Rating]++
		}
	}

	summary.ReviewCount = len(reviews)
	summary.ReviewRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	for star := 1; star <= 5; star++ {
		summary.RatingDistribution[star] = int(math.Round(float64(counts[star]) / float64(len(reviews)) * 100))
	}
	return summary
}

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// GetOne returns the user's review for a product, or nil when they have not
// reviewed it yet.
func (s *ReviewService) GetOne(userID, productID string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

// GetMultiple returns the user's reviews for the given products, keyed by
// product id for easy lookup.
func (s *ReviewService) GetMultiple(userID string, productIDs []string) (map[string]models.Review, error) {
	result := make(map[string]models.Review)
	if len(productIDs) == 0 {
		return result, nil
	}
	reviews, err := s.reviewRepo.ListByUserAndProducts(userID, productIDs)
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		result[r.ProductID] = r
	}
	return result, nil
}

// Create records a new review. A user may review a product at most once;
// the uniqueness is checked before insert.
func (s *ReviewService) Create(userID, productID string, rating int, description string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	_, err := s.reviewRepo.GetByUserAndProduct(userID, productID)
	if err == nil {
		return nil, fmt.Errorf("product %s already reviewed by user %s: %w", productID, userID, apperr.ErrConflict)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID:      userID,
		ProductID:   productID,
		Rating:      rating,
		Description: description,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update modifies an existing review. Only the author may update it.
func (s *ReviewService) Update(userID, reviewID string, rating int, description string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, fmt.Errorf("review %s is not owned by user %s: %w", reviewID, userID, apperr.ErrUnauthorized)
	}

	review.Rating = rating
	review.Description = description
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}
