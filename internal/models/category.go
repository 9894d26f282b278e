package models

import "gorm.io/gorm"

// Category is a node in the two-level category tree. Top-level categories
// have a nil ParentID; subcategories point at their parent.
type Category struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Color         string     `json:"color,omitempty" gorm:"type:varchar(20)"`
	ParentID      *string    `json:"parent_id,omitempty" gorm:"type:varchar(36);index"`
	Subcategories []Category `json:"subcategories,omitempty" gorm:"foreignKey:ParentID"`
	gorm.Model    `json:"-"`
}

// Tag is a free-form label attached to products and filterable by name.
type Tag struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	gorm.Model `json:"-"`
}
