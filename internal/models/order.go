package models

import "gorm.io/gorm"

// Order is the immutable record of one completed checkout session. Exactly
// one order exists per Stripe checkout session; the unique index on
// StripeCheckoutSessionID is what makes duplicate webhook deliveries safe.
type Order struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string    `json:"name" gorm:"type:varchar(255)"`
	UserID   string    `json:"user_id" gorm:"type:varchar(36);index" validate:"required"`
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TenantID string    `json:"tenant_id" gorm:"type:varchar(36);index" validate:"required"`
	Tenant   Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Products []Product `json:"products,omitempty" gorm:"many2many:order_products"`

	// TotalAmount is in minor currency units (cents).
	TotalAmount int64 `json:"total_amount" validate:"gte=0"`

	StripeCheckoutSessionID string `json:"stripe_checkout_session_id" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	StripeAccountID         string `json:"stripe_account_id,omitempty" gorm:"type:varchar(100)"`

	gorm.Model `json:"-"`
}
