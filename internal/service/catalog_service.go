package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// PaginatedProducts is the public catalog listing envelope. Total counts
// every match ignoring pagination.
type PaginatedProducts struct {
	Data       []*domain.Product `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CatalogService serves the public, unauthenticated read paths
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) (*PaginatedProducts, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts clamps pagination, runs the filter and wraps the result.
// Pages past the end return an empty data array with the correct totals.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*PaginatedProducts, error) {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	products, total, err := s.productRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &PaginatedProducts{
		Data:       products,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug retrieves an active product for the storefront detail
// page. Inactive and unknown slugs are both not found.
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.productRepo.FindActiveBySlug(ctx, slug)
}

// ListCategories retrieves all categories with active product counts
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}
