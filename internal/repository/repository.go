// Package repository defines the contract to the remote backend: per-table
// reads, inserts returning the stored row, partial patches and deletes.
package repository

import (
	"context"

	"github.com/carterror/nubex/internal/entity"
)

// ProductsPerPage is the storefront listing page size.
const ProductsPerPage = 12

// ProductQuery carries the storefront listing filters. Zero values mean
// "no filter"; Page is 1-based.
type ProductQuery struct {
	CategoryID string
	NameQuery  string
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
}

// CategoryRepository handles persistence for Categories.
type CategoryRepository interface {
	// FindAll returns every category ordered by position.
	FindAll(ctx context.Context) ([]entity.Category, error)
	Insert(ctx context.Context, in entity.CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository handles persistence for Suppliers.
type SupplierRepository interface {
	// FindAll returns every supplier ordered by name.
	FindAll(ctx context.Context) ([]entity.Supplier, error)
	Insert(ctx context.Context, in entity.SupplierInput) (*entity.Supplier, error)
	Update(ctx context.Context, id string, patch entity.SupplierPatch) (*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	// FindAll returns every product, newest first.
	FindAll(ctx context.Context) ([]entity.Product, error)
	// Search applies the storefront filters and pagination and returns the
	// matching page plus the total match count.
	Search(ctx context.Context, q ProductQuery) ([]entity.Product, int, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Insert(ctx context.Context, in entity.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository handles persistence for Orders.
type OrderRepository interface {
	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]entity.Order, error)
	Insert(ctx context.Context, in entity.OrderInput) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}

// StatsRepository aggregates the back-office dashboard numbers.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
}
