package repositories

import (
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// append-only records of completed checkout sessions.
type OrderRepository interface {
	// Create inserts the order. A duplicate checkout-session id returns an
	// error wrapping apperr.ErrConflict; callers treat that as the
	// idempotent-success path of webhook redelivery.
	Create(order *models.Order) error
	// GetBySessionID finds the order for a Stripe checkout session, or an
	// apperr.ErrNotFound-wrapping error when none exists.
	GetBySessionID(sessionID string) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	// ListByUser returns one page of the buyer's orders (newest first)
	// with products populated, plus the total order count.
	ListByUser(userID string, page, limit int) ([]models.Order, int64, error)
}
