package transport

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
)

// Stub collaborators shared by the handler tests.

type stubUserRepository struct {
	users map[uuid.UUID]*domain.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (s *stubUserRepository) Create(ctx context.Context, user *domain.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// stubCatalogService records the filter it was called with so tests can
// assert on query parameter translation.
type stubCatalogService struct {
	lastFilter repository.ProductFilter
	result     *service.PaginatedProducts
	product    *domain.Product
	productErr error
	categories []*domain.Category
}

func (s *stubCatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*service.PaginatedProducts, error) {
	s.lastFilter = filter
	if s.result != nil {
		return s.result, nil
	}
	return &service.PaginatedProducts{Data: []*domain.Product{}, Page: 1, Limit: 12}, nil
}

func (s *stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.product, nil
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories, nil
}

type stubThemeService struct {
	saved   domain.ThemeSettings
	theme   domain.ThemeSettings
	lastCSS string
}

func (s *stubThemeService) GetTheme(ctx context.Context) (domain.ThemeSettings, error) {
	if s.theme == nil {
		return domain.ThemeSettings{}, nil
	}
	return s.theme, nil
}

func (s *stubThemeService) SaveTheme(ctx context.Context, theme domain.ThemeSettings) error {
	s.saved = theme
	return nil
}

func (s *stubThemeService) WriteCSS(css string) error {
	s.lastCSS = css
	return nil
}
