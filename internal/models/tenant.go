package models

import "gorm.io/gorm"

// Tenant represents a seller's store within the shared marketplace. The slug
// doubles as the storefront subdomain ([slug].rootdomain).
type Tenant struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Slug     string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100,lowercase"`
	ImageURL string `json:"image_url,omitempty" gorm:"type:varchar(500)"`

	// StripeAccountID is the connected account that receives this store's
	// split payment proceeds.
	StripeAccountID string `json:"stripe_account_id,omitempty" gorm:"type:varchar(100)"`
	// StripeDetailsSubmitted is flipped by the account.updated webhook once
	// the seller completes Stripe onboarding. Products cannot be listed
	// before that.
	StripeDetailsSubmitted bool `json:"stripe_details_submitted" gorm:"default:false"`

	gorm.Model `json:"-"`
}
