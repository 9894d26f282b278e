package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Roles == "" {
		user.Roles = models.RoleUser
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s: %w", username, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user with their owned tenants populated.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Tenants").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// AttachTenant links a tenant to the user's owned stores.
func (r *GORMUserRepository) AttachTenant(userID string, tenant *models.Tenant) error {
	user := models.User{ID: userID}
	if err := r.db.Model(&user).Association("Tenants").Append(tenant); err != nil {
		return fmt.Errorf("failed to attach tenant to user %s: %w", userID, err)
	}
	return nil
}

// GORMTenantRepository is a GORM implementation of TenantRepository.
type GORMTenantRepository struct {
	db *gorm.DB
}

// NewGORMTenantRepository creates a new instance of GORMTenantRepository.
func NewGORMTenantRepository(db *gorm.DB) *GORMTenantRepository {
	return &GORMTenantRepository{
		db: db,
	}
}

// Create creates a new tenant in the database.
func (r *GORMTenantRepository) Create(tenant *models.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if err := r.db.Create(tenant).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// GetBySlug retrieves a tenant by its unique slug.
func (r *GORMTenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("tenant with slug %s: %w", slug, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by slug %s: %w", slug, err)
	}
	return &tenant, nil
}

// GetByID retrieves a tenant by its ID.
func (r *GORMTenantRepository) GetByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("tenant with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by ID %s: %w", id, err)
	}
	return &tenant, nil
}

// SetDetailsSubmitted updates the onboarding flag of the tenant owning the
// given connected account.
func (r *GORMTenantRepository) SetDetailsSubmitted(stripeAccountID string, submitted bool) error {
	res := r.db.Model(&models.Tenant{}).
		Where("stripe_account_id = ?", stripeAccountID).
		Update("stripe_details_submitted", submitted)
	if res.Error != nil {
		return fmt.Errorf("failed to update tenant for account %s: %w", stripeAccountID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tenant for account %s: %w", stripeAccountID, apperr.ErrNotFound)
	}
	return nil
}
