package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users   map[string]models.User
	tenants map[string][]models.Tenant // user id -> owned tenants
	mu      sync.Mutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]models.User),
		tenants: make(map[string][]models.Tenant),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername finds a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
}

// GetByEmail finds a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %q: %w", email, apperr.ErrNotFound)
}

// GetByID returns a user with owned tenants populated.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, apperr.ErrNotFound)
	}
	user := u
	user.Tenants = append([]models.Tenant(nil), r.tenants[id]...)
	return &user, nil
}

// AttachTenant links a tenant to the user's owned stores.
func (r *MockUserRepository) AttachTenant(userID string, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("user with ID %s: %w", userID, apperr.ErrNotFound)
	}
	r.tenants[userID] = append(r.tenants[userID], *tenant)
	return nil
}

// MockTenantRepository is an in-memory implementation of TenantRepository.
type MockTenantRepository struct {
	tenants map[string]models.Tenant
	mu      sync.Mutex
}

// NewMockTenantRepository creates a new instance of MockTenantRepository.
func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{tenants: make(map[string]models.Tenant)}
}

// Create adds a new tenant, rejecting duplicate slugs.
func (r *MockTenantRepository) Create(tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tenants {
		if t.Slug == tenant.Slug {
			return fmt.Errorf("tenant slug %q already exists: %w", tenant.Slug, apperr.ErrConflict)
		}
	}
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	r.tenants[tenant.ID] = *tenant
	return nil
}

// GetBySlug finds a tenant by slug.
func (r *MockTenantRepository) GetBySlug(slug string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tenants {
		if t.Slug == slug {
			tenant := t
			return &tenant, nil
		}
	}
	return nil, fmt.Errorf("tenant %q: %w", slug, apperr.ErrNotFound)
}

// GetByID returns a tenant by its ID.
func (r *MockTenantRepository) GetByID(id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant with ID %s: %w", id, apperr.ErrNotFound)
	}
	tenant := t
	return &tenant, nil
}

// SetDetailsSubmitted updates the onboarding flag of the tenant whose
// connected account matches stripeAccountID.
func (r *MockTenantRepository) SetDetailsSubmitted(stripeAccountID string, submitted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tenants {
		if t.StripeAccountID == stripeAccountID {
			t.StripeDetailsSubmitted = submitted
			r.tenants[id] = t
			return nil
		}
	}
	return fmt.Errorf("tenant with account %s: %w", stripeAccountID, apperr.ErrNotFound)
}
