package service

import (
	"context"
	"fmt"

	"freshfood/internal/domain"
	"freshfood/internal/repository"
)

// LowStockThreshold is the variant stock level below which a variant
// appears on the dashboard restock list.
const LowStockThreshold = 10

// RecentOrderCount is how many recent orders the dashboard shows.
const RecentOrderCount = 10

// LowStockVariant identifies a (product, variant) pair running low.
type LowStockVariant struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	Stock       int    `json:"stock"`
}

// DashboardStats is the admin dashboard aggregate, recomputed from full
// collection scans on every call.
type DashboardStats struct {
	TotalProducts  int                        `json:"total_products"`
	ActiveProducts int                        `json:"active_products"`
	TotalOrders    int                        `json:"total_orders"`
	TotalRevenue   float64                    `json:"total_revenue"`
	OrdersByStatus map[domain.OrderStatus]int `json:"orders_by_status"`
	RecentOrders   []*domain.Order            `json:"recent_orders"`
	LowStock       []LowStockVariant          `json:"low_stock"`
}

// StatsService computes the admin dashboard aggregate
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(products repository.ProductRepository, orders repository.OrderRepository) StatsService {
	return &statsService{products: products, orders: orders}
}

// Dashboard reads the full product and order collections and recomputes
// every figure in memory. Revenue counts delivered orders only.
func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for dashboard: %w", err)
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for dashboard: %w", err)
	}

	stats := &DashboardStats{
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[domain.OrderStatus]int, len(domain.OrderStatuses)),
		LowStock:       []LowStockVariant{},
	}

	for _, status := range domain.OrderStatuses {
		stats.OrdersByStatus[status] = 0
	}

	for _, p := range products {
		if p.IsActive {
			stats.ActiveProducts++
		}
		for _, v := range p.Variants {
			if v.Stock < LowStockThreshold {
				stats.LowStock = append(stats.LowStock, LowStockVariant{
					ProductID:   p.ID,
					ProductName: p.Name,
					VariantName: v.Name,
					Stock:       v.Stock,
				})
			}
		}
	}

	for _, o := range orders {
		if o.Status == domain.OrderStatusDelivered {
			stats.TotalRevenue += o.Total
		}
		if _, known := stats.OrdersByStatus[o.Status]; known {
			stats.OrdersByStatus[o.Status]++
		}
	}

	// Orders arrive newest first from the repository.
	recent := len(orders)
	if recent > RecentOrderCount {
		recent = RecentOrderCount
	}
	stats.RecentOrders = orders[:recent]

	return stats, nil
}
