package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidSlug = errors.New("name does not produce a valid slug")

// CreateProductInput carries the validated fields for a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice *float64
	Images         []string
	Inventory      int
	SKU            string
	Weight         *float64
	Dimensions     string
	IsFeatured     bool
	CategoryID     uuid.UUID
}

// UpdateProductInput is an explicit per-field patch. Nil fields are left
// untouched; the request body is never spread into the row blindly.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	CompareAtPrice *float64
	Images         *[]string
	Inventory      *int
	SKU            *string
	Weight         *float64
	Dimensions     *string
	IsActive       *bool
	IsFeatured     *bool
	CategoryID     *uuid.UUID
}

// ProductService implements the admin product operations
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create derives the slug from the name, rejects duplicates and unknown
// categories, and stores the product as active.
func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	slug := domain.Slugify(input.Name)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	taken, err := s.productRepo.SlugExists(ctx, slug, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, repository.ErrProductSlugExists
	}

	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:             uuid.New(),
		Name:           input.Name,
		Slug:           slug,
		Description:    input.Description,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Images:         domain.ImageList(input.Images),
		Inventory:      input.Inventory,
		SKU:            input.SKU,
		Weight:         input.Weight,
		Dimensions:     input.Dimensions,
		IsActive:       true,
		IsFeatured:     input.IsFeatured,
		CategoryID:     input.CategoryID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, product.ID)
}

// Update applies the whitelisted patch. A name change regenerates the slug
// with the same derivation and uniqueness check as creation, which changes
// the product's public URL.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != product.Name {
		slug := domain.Slugify(*input.Name)
		if slug == "" {
			return nil, ErrInvalidSlug
		}

		taken, err := s.productRepo.SlugExists(ctx, slug, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if taken {
			return nil, repository.ErrProductSlugExists
		}

		product.Name = *input.Name
		product.Slug = slug
	}

	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CompareAtPrice != nil {
		product.CompareAtPrice = input.CompareAtPrice
	}
	if input.Images != nil {
		product.Images = domain.ImageList(*input.Images)
	}
	if input.Inventory != nil {
		product.Inventory = *input.Inventory
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Weight != nil {
		product.Weight = input.Weight
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}

	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, id)
}

// Delete removes a product unconditionally
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// GetByID retrieves a product regardless of active state
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListAll retrieves every product for the admin panel
func (s *productService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.ListAll(ctx)
}
