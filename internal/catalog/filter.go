// Package catalog builds product listing queries from user-facing filter
// parameters. The filter is a plain value; the repository resolves the
// category slug and applies the filter as a GORM scope.
package catalog

import (
	"gorm.io/gorm"
)

// Sort names a listing order. Curated and Trending both resolve to
// newest-first today; they stay separate modes so they can diverge.
type Sort string

const (
	SortCurated   Sort = "curated"
	SortTrending  Sort = "trending"
	SortHotAndNew Sort = "hot_and_new"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

var sortClauses = map[Sort]string{
	SortCurated:   "products.created_at DESC",
	SortTrending:  "products.created_at DESC",
	SortHotAndNew: "products.created_at ASC",
	SortPriceAsc:  "products.price ASC",
	SortPriceDesc: "products.price DESC",
}

// Default pagination values for product listings.
const (
	DefaultPage  = 1
	DefaultLimit = 6
)

// Filter holds the user-facing listing parameters. Zero values mean "no
// constraint"; an empty filter matches every visible product.
type Filter struct {
	CategorySlug  string
	IsSubcategory bool
	MinPrice      *float64
	MaxPrice      *float64
	Tags          []string
	TenantSlug    string
	Sort          Sort
	Page          int
	Limit         int
}

// Normalize fills in pagination and sort defaults.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if _, ok := sortClauses[f.Sort]; !ok {
		f.Sort = SortCurated
	}
}

// OrderClause returns the SQL order clause for the filter's sort mode.
func (f Filter) OrderClause() string {
	if clause, ok := sortClauses[f.Sort]; ok {
		return clause
	}
	return sortClauses[SortCurated]
}

// Scope returns a GORM scope applying every condition except the category
// one, which needs the resolved category ids (see CategoryScope). Archived
// products are always excluded; private products are excluded from the
// shared marketplace listing but kept on the owning tenant's storefront.
func (f Filter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("products.is_archived = ?", false)
		if f.TenantSlug == "" {
			db = db.Where("products.is_private = ?", false)
		} else {
			db = db.Joins("JOIN tenants ON tenants.id = products.tenant_id").
				Where("tenants.slug = ?", f.TenantSlug)
		}
		if f.MinPrice != nil {
			db = db.Where("products.price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("products.price <= ?", *f.MaxPrice)
		}
		if len(f.Tags) > 0 {
			// EXISTS keeps the result set duplicate-free when a product
			// carries several of the requested tags.
			db = db.Where(
				"EXISTS (SELECT 1 FROM product_tags JOIN tags ON tags.id = product_tags.tag_id "+
					"WHERE product_tags.product_id = products.id AND tags.name IN ?)",
				f.Tags,
			)
		}
		return db
	}
}

// CategoryScope returns a scope restricting products to the resolved
// category. For a parent category the predicate is an OR group: products
// directly in the category plus products in any of its subcategories. For a
// subcategory only the exact id matches.
func (f Filter) CategoryScope(categoryID string, subcategoryIDs []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.IsSubcategory || len(subcategoryIDs) == 0 {
			return db.Where("products.category_id = ?", categoryID)
		}
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("products.category_id = ?", categoryID).
				Or("products.category_id IN ?", subcategoryIDs),
		)
	}
}

// Offset returns the row offset for the filter's page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}
