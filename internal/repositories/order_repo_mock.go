package repositories

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// enforces the session-id uniqueness invariant the way the database's unique
// index does, so idempotency tests behave like production.
type MockOrderRepository struct {
	orders    map[string]models.Order
	bySession map[string]string // session id -> order id
	mu        sync.Mutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:    make(map[string]models.Order),
		bySession: make(map[string]string),
	}
}

// Create adds a new order, rejecting duplicate checkout-session ids.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySession[order.StripeCheckoutSessionID]; exists {
		return fmt.Errorf("order for session %s already exists: %w", order.StripeCheckoutSessionID, apperr.ErrConflict)
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders[order.ID] = *order
	r.bySession[order.StripeCheckoutSessionID] = order.ID
	return nil
}

// GetBySessionID finds the order for a checkout session.
func (r *MockOrderRepository) GetBySessionID(sessionID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.bySession[sessionID]
	if !ok {
		return nil, fmt.Errorf("order for session %s: %w", sessionID, apperr.ErrNotFound)
	}
	order := r.orders[id]
	return &order, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperr.ErrNotFound)
	}
	return &order, nil
}

// ListByUser returns one page of the buyer's orders, newest first.
func (r *MockOrderRepository) ListByUser(userID string, page, limit int) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var owned []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			owned = append(owned, o)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	start := (page - 1) * limit
	if start > len(owned) {
		start = len(owned)
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}
