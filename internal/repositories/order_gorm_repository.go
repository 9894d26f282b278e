package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository. It relies
// on the unique index over stripe_checkout_session_id: the database, not the
// application, is what ultimately guarantees one order per session.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts the order. Requires the gorm session to translate driver
// errors (TranslateError) so a duplicate session id surfaces as
// gorm.ErrDuplicatedKey, which is mapped to apperr.ErrConflict.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	// Products on the order are references to existing rows; only the
	// join records are written.
	if err := r.db.Omit("Products.*").Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("order for session %s already exists: %w", order.StripeCheckoutSessionID, apperr.ErrConflict)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetBySessionID finds the order recorded for a checkout session.
func (r *GORMOrderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "stripe_checkout_session_id = ?", sessionID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order for session %s: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by session ID %s: %w", sessionID, err)
	}
	return &order, nil
}

// GetByID retrieves a single order with its relations populated.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("User").
		Preload("Tenant").
		Preload("Products").
		Preload("Products.Tenant").
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns one page of the buyer's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string, page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := r.db.
		Preload("Tenant").
		Preload("Products").
		Preload("Products.Tenant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, total, nil
}
