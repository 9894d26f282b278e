package repositories

import (
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Search applies the catalog filter with pagination and returns the
	// matching page plus the total match count. An unresolvable category
	// slug is an error, not an empty result.
	Search(filter catalog.Filter) ([]models.Product, int64, error)
	// GetByIDs returns the non-archived products among the given ids.
	// Missing ids are simply absent from the result.
	GetByIDs(ids []string) ([]models.Product, error)
	// GetForCheckout returns the non-archived products matching the ids
	// that belong to the tenant with the given slug, tenant populated.
	GetForCheckout(tenantSlug string, ids []string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
