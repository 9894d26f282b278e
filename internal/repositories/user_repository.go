package repositories

import "github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByID returns the user with owned tenants populated.
	GetByID(id string) (*models.User, error)
	// AttachTenant links a tenant to the user's owned stores.
	AttachTenant(userID string, tenant *models.Tenant) error
}

// TenantRepository defines the interface for tenant (store) data access.
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetBySlug(slug string) (*models.Tenant, error)
	GetByID(id string) (*models.Tenant, error)
	// SetDetailsSubmitted updates the onboarding flag of the tenant whose
	// connected account matches stripeAccountID.
	SetDetailsSubmitted(stripeAccountID string, submitted bool) error
}
