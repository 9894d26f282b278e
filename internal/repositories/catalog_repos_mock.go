package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
// It enforces the one-review-per-buyer-per-product invariant.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.Mutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[string]models.Review)}
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return fmt.Errorf("review by user %s for product %s already exists: %w",
				review.UserID, review.ProductID, apperr.ErrConflict)
		}
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews[review.ID] = *review
	return nil
}

// Update replaces an existing review.
func (r *MockReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return fmt.Errorf("review with ID %s: %w", review.ID, apperr.ErrNotFound)
	}
	r.reviews[review.ID] = *review
	return nil
}

// GetByID returns a review by its ID.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review with ID %s: %w", id, apperr.ErrNotFound)
	}
	review := rev
	return &review, nil
}

// GetByUserAndProduct returns the user's review of one product.
func (r *MockReviewRepository) GetByUserAndProduct(userID, productID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ProductID == productID {
			review := rev
			return &review, nil
		}
	}
	return nil, fmt.Errorf("review by user %s for product %s: %w", userID, productID, apperr.ErrNotFound)
}

// ListByUserAndProducts returns the user's reviews for the given product ids.
func (r *MockReviewRepository) ListByUserAndProducts(userID string, productIDs []string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var result []models.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID && wanted[rev.ProductID] {
			result = append(result, rev)
		}
	}
	return result, nil
}

// ListByProductIDs returns every review whose product id is in the set.
func (r *MockReviewRepository) ListByProductIDs(productIDs []string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var result []models.Review
	for _, rev := range r.reviews {
		if wanted[rev.ProductID] {
			result = append(result, rev)
		}
	}
	return result, nil
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.Mutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]models.Category)}
}

// Create adds a new category, rejecting duplicate slugs.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == category.Slug {
			return fmt.Errorf("category slug %q already exists: %w", category.Slug, apperr.ErrConflict)
		}
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// GetBySlug returns the category with its subcategories populated.
func (r *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			category := c
			category.Subcategories = r.childrenOf(c.ID)
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", slug, apperr.ErrNotFound)
}

// ListTopLevel returns parent categories sorted by name with subcategories.
func (r *MockCategoryRepository) ListTopLevel() ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var parents []models.Category
	for _, c := range r.categories {
		if c.ParentID == nil {
			category := c
			category.Subcategories = r.childrenOf(c.ID)
			parents = append(parents, category)
		}
	}
	sort.SliceStable(parents, func(i, j int) bool {
		return parents[i].Name < parents[j].Name
	})
	return parents, nil
}

// childrenOf must be called with the mutex held.
func (r *MockCategoryRepository) childrenOf(parentID string) []models.Category {
	var children []models.Category
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// MockTagRepository is an in-memory implementation of TagRepository.
type MockTagRepository struct {
	tags []models.Tag
	mu   sync.Mutex
}

// NewMockTagRepository creates a new instance of MockTagRepository.
func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{}
}

// Create adds a new tag, rejecting duplicate names.
func (r *MockTagRepository) Create(tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tags {
		if t.Name == tag.Name {
			return fmt.Errorf("tag %q already exists: %w", tag.Name, apperr.ErrConflict)
		}
	}
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	r.tags = append(r.tags, *tag)
	return nil
}

// GetByName finds a tag by name.
func (r *MockTagRepository) GetByName(name string) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tags {
		if t.Name == name {
			tag := t
			return &tag, nil
		}
	}
	return nil, fmt.Errorf("tag %q: %w", name, apperr.ErrNotFound)
}

// List returns one page of tags in creation order plus the total count.
func (r *MockTagRepository) List(page, limit int) ([]models.Tag, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := int64(len(r.tags))
	start := (page - 1) * limit
	if start > len(r.tags) {
		start = len(r.tags)
	}
	end := start + limit
	if end > len(r.tags) {
		end = len(r.tags)
	}
	return append([]models.Tag(nil), r.tags[start:end]...), total, nil
}
