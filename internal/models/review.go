package models

import "gorm.io/gorm"

// Review is one user's rating and write-up for one product. The one-review-
// per-(user, product) rule is enforced by the service before insert.
type Review struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string  `json:"user_id" gorm:"type:varchar(36);index:idx_reviews_user_product" validate:"required"`
	ProductID   string  `json:"product_id" gorm:"type:varchar(36);index:idx_reviews_user_product" validate:"required"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Description string  `json:"description" gorm:"type:text" validate:"required,min=3"`
	User        User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product     Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	gorm.Model  `json:"-"`
}
