package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// CreateCategoryInput carries the validated fields for a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
}

// UpdateCategoryInput is an explicit per-field patch.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
}

// CategoryService implements the admin category operations
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create derives the slug from the name and rejects duplicates
func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	slug := domain.Slugify(input.Name)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	if _, err := s.categoryRepo.FindBySlug(ctx, slug); err == nil {
		return nil, repository.ErrCategorySlugExists
	} else if err != repository.ErrCategoryNotFound {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	now := time.Now()
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Update applies the patch; a rename regenerates the slug
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		slug := domain.Slugify(*input.Name)
		if slug == "" {
			return nil, ErrInvalidSlug
		}

		if existing, err := s.categoryRepo.FindBySlug(ctx, slug); err == nil && existing.ID != id {
			return nil, repository.ErrCategorySlugExists
		} else if err != nil && err != repository.ErrCategoryNotFound {
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}

		category.Name = *input.Name
		category.Slug = slug
	}

	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Image != nil {
		category.Image = *input.Image
	}

	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category unless it still owns products
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.categoryRepo.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return repository.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}

// List retrieves all categories with product counts
func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}
