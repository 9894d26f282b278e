package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetBySlug retrieves a category with its subcategories populated.
func (r *GORMCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Preload("Subcategories").First(&category, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category with slug %s: %w", slug, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// ListTopLevel returns parent categories sorted by name, subcategories
// populated.
func (r *GORMCategoryRepository) ListTopLevel() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Preload("Subcategories").
		Where("parent_id IS NULL").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// Create creates a new tag in the database.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByName retrieves a tag by its unique name.
func (r *GORMTagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("tag with name %s: %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag by name %s: %w", name, err)
	}
	return &tag, nil
}

// List returns one page of tags in creation order.
func (r *GORMTagRepository) List(page, limit int) ([]models.Tag, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	var tags []models.Tag
	err := r.db.
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, total, nil
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update updates an existing review.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s: %w", review.ID, apperr.ErrNotFound)
	}
	return nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// GetByUserAndProduct retrieves the user's review for one product.
func (r *GORMReviewRepository) GetByUserAndProduct(userID, productID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review by user %s for product %s: %w", userID, productID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// ListByUserAndProducts returns the user's reviews for the given product ids.
func (r *GORMReviewRepository) ListByUserAndProducts(userID string, productIDs []string) ([]models.Review, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var reviews []models.Review
	err := r.db.Where("user_id = ? AND product_id IN ?", userID, productIDs).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for user %s: %w", userID, err)
	}
	return reviews, nil
}

// ListByProductIDs returns every review whose product id is in the set.
func (r *GORMReviewRepository) ListByProductIDs(productIDs []string) ([]models.Review, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var reviews []models.Review
	err := r.db.Where("product_id IN ?", productIDs).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by product ids: %w", err)
	}
	return reviews, nil
}
