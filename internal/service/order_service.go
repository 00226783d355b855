package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	DefaultOrderLimit = 10
	MaxOrderLimit     = 100

	// recentOrderWindow is the lookback used by the dashboard stats
	recentOrderWindow = 7 * 24 * time.Hour
)

// DashboardStats summarizes the store for the admin dashboard
type DashboardStats struct {
	TotalProducts int     `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	RecentOrders  int     `json:"recent_orders"`
}

// OrderService exposes the read-only order views. Orders are created by
// the external checkout provider, never here.
type OrderService interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// ListRecent retrieves the most recent orders, clamping the limit
func (s *orderService) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	if limit < 1 {
		limit = DefaultOrderLimit
	}
	if limit > MaxOrderLimit {
		limit = MaxOrderLimit
	}

	return s.orderRepo.ListRecent(ctx, limit)
}

// Stats aggregates the dashboard counters
func (s *orderService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	totalRevenue, err := s.orderRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	recentOrders, err := s.orderRepo.CountSince(ctx, time.Now().Add(-recentOrderWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent orders: %w", err)
	}

	return &DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalRevenue:  totalRevenue,
		RecentOrders:  recentOrders,
	}, nil
}
