package services

import (
	"errors"
	"fmt"

	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/apperr"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

// LibraryService serves a buyer's purchased goods.
type LibraryService struct {
	orderRepo repositories.OrderRepository
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(orderRepo repositories.OrderRepository) *LibraryService {
	return &LibraryService{
		orderRepo: orderRepo,
	}
}

// LibraryPage is one page of the buyer's orders.
type LibraryPage struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// GetAll returns one page of the buyer's orders, newest first. The cursor
// is a page number.
func (s *LibraryService) GetAll(userID string, cursor, limit int) (*LibraryPage, error) {
	if cursor < 1 {
		cursor = 1
	}
	if limit < 1 {
		limit = 10
	}
	orders, total, err := s.orderRepo.ListByUser(userID, cursor, limit)
	if err != nil {
		return nil, err
	}
	return &LibraryPage{
		Orders:     orders,
		Pagination: newPagination(cursor, limit, total),
	}, nil
}

// GetOne returns one of the buyer's orders. An order belonging to someone
// else is reported as not found, not as forbidden.
func (s *LibraryService) GetOne(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s is not owned by user %s: %w", orderID, userID, apperr.ErrNotFound)
	}
	return order, nil
}

// Owns reports whether the user has purchased the product through any order.
func (s *LibraryService) Owns(userID, productID string) (bool, error) {
	orders, _, err := s.orderRepo.ListByUser(userID, 1, 1000)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	for _, order := range orders {
		for _, p := range order.Products {
			if p.ID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
