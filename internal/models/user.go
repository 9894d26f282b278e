package models

import (
	"strings"

	"gorm.io/gorm"
)

// RoleUser and RoleSuperAdmin are the recognized user roles.
const (
	RoleUser       = "user"
	RoleSuperAdmin = "super-admin"
)

// User represents an account on the marketplace. A user may own one or more
// tenants (stores) when they registered as a seller.
type User struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string   `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string   `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string   `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Roles      string   `json:"roles" gorm:"type:varchar(100);default:user"`
	Tenants    []Tenant `json:"tenants,omitempty" gorm:"many2many:user_tenants"`
	gorm.Model `json:"-"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the user has the super-admin role.
func (u *User) IsSuperAdmin() bool {
	return u.HasRole(RoleSuperAdmin)
}
