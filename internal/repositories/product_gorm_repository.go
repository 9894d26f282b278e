package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Search resolves the filter's category slug (when set) and executes the
// listing query with pagination.
func (r *GORMProductRepository) Search(filter catalog.Filter) ([]models.Product, int64, error) {
	filter.Normalize()

	query := r.db.Model(&models.Product{}).Scopes(filter.Scope())

	if filter.CategorySlug != "" {
		var category models.Category
		err := r.db.Preload("Subcategories").
			First(&category, "slug = ?", filter.CategorySlug).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, 0, fmt.Errorf("category with slug %q: %w", filter.CategorySlug, apperr.ErrNotFound)
			}
			return nil, 0, fmt.Errorf("failed to resolve category %q: %w", filter.CategorySlug, err)
		}
		subIDs := make([]string, 0, len(category.Subcategories))
		for _, sub := range category.Subcategories {
			subIDs = append(subIDs, sub.ID)
		}
		query = query.Scopes(filter.CategoryScope(category.ID, subIDs))
	}

	// The session makes the built query reusable: Count and Find each run
	// on a clone instead of mutating the same statement.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.
		Preload("Tenant").
		Preload("Category").
		Preload("Tags").
		Order(filter.OrderClause()).
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	return products, total, nil
}

// GetByIDs retrieves the non-archived products among the given ids.
func (r *GORMProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.
		Preload("Tenant").
		Where("id IN ? AND is_archived = ?", ids, false).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products by ids: %w", err)
	}
	return products, nil
}

// GetForCheckout retrieves non-archived products matching the ids that
// belong to the tenant with the given slug.
func (r *GORMProductRepository) GetForCheckout(tenantSlug string, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.
		Preload("Tenant").
		Joins("JOIN tenants ON tenants.id = products.tenant_id").
		Where("products.id IN ? AND tenants.slug = ? AND products.is_archived = ?", ids, tenantSlug, false).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Tenant").
		Preload("Category").
		Preload("Tags").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperr.ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
