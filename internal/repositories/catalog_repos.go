package repositories

import "github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"

// CategoryRepository defines the interface for category data access. The
// category tree is seeded once and read-mostly thereafter.
type CategoryRepository interface {
	Create(category *models.Category) error
	// GetBySlug returns the category with its subcategories populated.
	GetBySlug(slug string) (*models.Category, error)
	// ListTopLevel returns parent categories sorted by name, each with its
	// subcategories populated.
	ListTopLevel() ([]models.Category, error)
}

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	// List returns one page of tags in creation order plus the total count.
	List(page, limit int) ([]models.Tag, int64, error)
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	GetByID(id string) (*models.Review, error)
	GetByUserAndProduct(userID, productID string) (*models.Review, error)
	// ListByUserAndProducts returns the user's reviews for the given
	// product ids.
	ListByUserAndProducts(userID string, productIDs []string) ([]models.Review, error)
	// ListByProductIDs returns every review whose product id is in the set.
	ListByProductIDs(productIDs []string) ([]models.Review, error)
}
