package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterror/nubex/internal/admin"
	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/messaging"
	"github.com/carterror/nubex/internal/repository"
	"github.com/carterror/nubex/internal/slug"
)

// AdminService fronts the admin collection store with the defaulting the
// forms rely on: slugs derived from names when absent, statuses defaulted to
// active.
type AdminService struct {
	store     *admin.Store
	stats     repository.StatsRepository
	publisher messaging.Publisher
}

func NewAdminService(store *admin.Store, stats repository.StatsRepository, publisher messaging.Publisher) *AdminService {
	return &AdminService{store: store, stats: stats, publisher: publisher}
}

// DashboardStats returns the store overview numbers.
func (s *AdminService) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}

// Store exposes the underlying collections for reads.
func (s *AdminService) Store() *admin.Store { return s.store }

// CreateCategory derives the slug from the name when none was supplied and
// defaults the status, then creates through the collection store. Returns
// nil when the remote call failed.
func (s *AdminService) CreateCategory(ctx context.Context, in entity.CategoryInput) *entity.Category {
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	return s.store.CreateCategory(ctx, in)
}

// UpdateCategory re-derives the slug only when the name changes and no slug
// was explicitly supplied.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, patch entity.CategoryPatch) *entity.Category {
	if patch.Name != nil && patch.Slug == nil {
		derived := slug.Make(*patch.Name)
		patch.Slug = &derived
	}
	return s.store.UpdateCategory(ctx, id, patch)
}

func (s *AdminService) DeleteCategory(ctx context.Context, id string) {
	s.store.DeleteCategory(ctx, id)
}

// CreateSupplier defaults the status and creates through the collection store.
func (s *AdminService) CreateSupplier(ctx context.Context, in entity.SupplierInput) *entity.Supplier {
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	return s.store.CreateSupplier(ctx, in)
}

func (s *AdminService) UpdateSupplier(ctx context.Context, id string, patch entity.SupplierPatch) *entity.Supplier {
	return s.store.UpdateSupplier(ctx, id, patch)
}

func (s *AdminService) DeleteSupplier(ctx context.Context, id string) {
	s.store.DeleteSupplier(ctx, id)
}

// CreateProduct derives the slug from the name when none was supplied.
func (s *AdminService) CreateProduct(ctx context.Context, in entity.ProductInput) *entity.Product {
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	return s.store.CreateProduct(ctx, in)
}

// UpdateProduct re-derives the slug only when the name changes and no slug
// was explicitly supplied.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, patch entity.ProductPatch) *entity.Product {
	if patch.Name != nil && patch.Slug == nil {
		derived := slug.Make(*patch.Name)
		patch.Slug = &derived
	}
	return s.store.UpdateProduct(ctx, id, patch)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) {
	s.store.DeleteProduct(ctx, id)
}

// UpdateOrderStatus moves an order through its lifecycle and announces the
// transition on the bus.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) *entity.Order {
	order := s.store.UpdateOrderStatus(ctx, id, status)
	if order == nil {
		return nil
	}

	event := entity.OrderStatusChanged{
		OrderID:   order.ID,
		Status:    order.Status,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, order.ID, event); err != nil {
		slog.Error("Failed to publish OrderStatusChanged", "order_id", order.ID, "err", err)
	}
	return order
}
