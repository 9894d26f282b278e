package services

import (
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/catalog"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

// ProductWithRatings is a listed product joined with its review aggregates.
// A product with no reviews carries zeroed aggregates, never nulls.
type ProductWithRatings struct {
	models.Product
	RatingSummary
}

// ProductListResult is one page of the product listing.
type ProductListResult struct {
	Products   []ProductWithRatings `json:"products"`
	Pagination Pagination           `json:"pagination"`
}

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	productRepo repositories.ProductRepository
	reviewRepo  repositories.ReviewRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, reviewRepo repositories.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// List executes the filtered listing query and joins per-product review
// aggregates. Reviews are fetched only for the returned page's products, so
// the review scan is bounded by the page size.
func (s *ProductService) List(filter catalog.Filter) (*ProductListResult, error) {
	filter.Normalize()

	products, total, err := s.productRepo.Search(filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	byProduct, err := s.reviewsByProduct(ids)
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{
		Products:   make([]ProductWithRatings, 0, len(products)),
		Pagination: newPagination(filter.Page, filter.Limit, total),
	}
	for _, p := range products {
		result.Products = append(result.Products, ProductWithRatings{
			Product:       p,
			RatingSummary: AggregateRatings(byProduct[p.ID]),
		})
	}
	return result, nil
}

// GetOne returns a single visible product with its review aggregates.
func (s *ProductService) GetOne(id string) (*ProductWithRatings, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByProductIDs([]string{product.ID})
	if err != nil {
		return nil, err
	}
	return &ProductWithRatings{
		Product:       *product,
		RatingSummary: AggregateRatings(reviews),
	}, nil
}

// CreateProduct creates a new product listing.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product listing.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

func (s *ProductService) reviewsByProduct(productIDs []string) (map[string][]models.Review, error) {
	grouped := make(map[string][]models.Review)
	if len(productIDs) == 0 {
		return grouped, nil
	}
	reviews, err := s.reviewRepo.ListByProductIDs(productIDs)
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		grouped[r.ProductID] = append(grouped[r.ProductID], r)
	}
	return grouped, nil
}
