package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Categories added with AddCategory take part in slug resolution the same
// way the GORM implementation resolves them.
type MockProductRepository struct {
	products   map[string]models.Product
	categories map[string]models.Category // keyed by slug
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[string]models.Product),
		categories: make(map[string]models.Category),
	}
}

// AddCategory registers a category for slug resolution in Search.
func (r *MockProductRepository) AddCategory(category models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.Slug] = category
}

// Search applies the catalog filter in memory.
func (r *MockProductRepository) Search(filter catalog.Filter) ([]models.Product, int64, error) {
	filter.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	allowedCategories := map[string]bool{}
	if filter.CategorySlug != "" {
		category, ok := r.categories[filter.CategorySlug]
		if !ok {
			return nil, 0, fmt.Errorf("category with slug %q: %w", filter.CategorySlug, apperr.ErrNotFound)
		}
		allowedCategories[category.ID] = true
		if !filter.IsSubcategory {
			for _, sub := range category.Subcategories {
				allowedCategories[sub.ID] = true
			}
		}
	}

	var matched []models.Product
	for _, p := range r.products {
		if p.IsArchived {
			continue
		}
		if filter.TenantSlug == "" {
			if p.IsPrivate {
				continue
			}
		} else if p.Tenant.Slug != filter.TenantSlug {
			continue
		}
		if len(allowedCategories) > 0 {
			if p.CategoryID == nil || !allowedCategories[*p.CategoryID] {
				continue
			}
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(p.Tags, filter.Tags) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, filter.Sort)

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func hasAnyTag(tags []models.Tag, names []string) bool {
	for _, t := range tags {
		for _, n := range names {
			if t.Name == n {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []models.Product, mode catalog.Sort) {
	switch mode {
	case catalog.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case catalog.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case catalog.SortHotAndNew:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	default: // curated and trending are both newest-first
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// GetByIDs returns the non-archived products among the given ids.
func (r *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !p.IsArchived {
			products = append(products, p)
		}
	}
	return products, nil
}

// GetForCheckout returns non-archived tenant-scoped products matching the ids.
func (r *MockProductRepository) GetForCheckout(tenantSlug string, ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, id := range ids {
		p, ok := r.products[id]
		if !ok || p.IsArchived || p.Tenant.Slug != tenantSlug {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, apperr.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperr.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}
