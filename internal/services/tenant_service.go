package services

import (
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/models"
	"github.com/ahmedhassan0101/multitenant-ecommerce/internal/repositories"
)

// TenantService handles storefront lookups.
type TenantService struct {
	tenantRepo repositories.TenantRepository
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo repositories.TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

// GetBySlug resolves a storefront by its slug.
func (s *TenantService) GetBySlug(slug string) (*models.Tenant, error) {
	return s.tenantRepo.GetBySlug(slug)
}

// CategoryService serves the category tree.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// GetAll returns parent categories with nested subcategories, sorted by
// name.
func (s *CategoryService) GetAll() ([]models.Category, error) {
	return s.categoryRepo.ListTopLevel()
}

// TagListResult is one page of tags.
type TagListResult struct {
	Tags       []models.Tag `json:"tags"`
	Pagination Pagination   `json:"pagination"`
}

// TagService serves product tags.
type TagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// GetAll returns one page of tags in creation order.
func (s *TagService) GetAll(page, limit int) (*TagListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	tags, total, err := s.tagRepo.List(page, limit)
	if err != nil {
		return nil, err
	}
	return &TagListResult{
		Tags:       tags,
		Pagination: newPagination(page, limit, total),
	}, nil
}
