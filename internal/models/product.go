package models

import "gorm.io/gorm"

// Refund policy options for a product.
var RefundPolicies = []string{"30-day", "14-day", "7-day", "3-day", "1-day", "no-refunds"}

// Product represents a digital good listed by a tenant. Price is stored in
// major currency units (USD); checkout converts to minor units.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Description string   `json:"description,omitempty" gorm:"type:text" validate:"omitempty,max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	TenantID    string   `json:"tenant_id" gorm:"type:varchar(36);index" validate:"required"`
	Tenant      Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	CategoryID  *string  `json:"category_id,omitempty" gorm:"type:varchar(36);index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags        []Tag    `json:"tags,omitempty" gorm:"many2many:product_tags"`
	ImageURL    string   `json:"image_url,omitempty" gorm:"type:varchar(500)"`

	RefundPolicy string `json:"refund_policy" gorm:"type:varchar(20);default:30-day" validate:"omitempty,oneof=30-day 14-day 7-day 3-day 1-day no-refunds"`

	// Content is only returned to buyers who own the product through an
	// order (library view).
	Content string `json:"content,omitempty" gorm:"type:text"`

	// IsPrivate hides the product from the shared marketplace listing; it
	// stays visible on the tenant's own storefront.
	IsPrivate bool `json:"is_private" gorm:"default:false"`
	// IsArchived removes the product from every listing and from checkout.
	IsArchived bool `json:"is_archived" gorm:"default:false"`

	gorm.Model `json:"-"`
}
