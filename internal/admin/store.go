// Package admin holds the back-office collection stores: in-memory mirrors
// of the remote tables with fetch/create/update/delete operations that
// optimistically patch the local list from the server's echoed row.
//
// Failure policy, deliberately: a failed remote call is logged and swallowed
// at this layer. The local list simply does not change and create/update
// return nil to the caller. Concurrent edits from two clients are
// last-write-wins at the remote layer; this store does no conflict detection.
// Callers reconcile explicitly by fetching again.
package admin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

// Collection mirrors one remote table. A fetch replaces its contents
// wholesale; mutations patch single entries from server-echoed rows.
type Collection[T any] struct {
	name string
	id   func(T) string

	mu      sync.RWMutex
	items   []T
	loading bool
}

func newCollection[T any](name string, id func(T) string) *Collection[T] {
	return &Collection[T]{name: name, id: id}
}

// Items returns a copy of the mirrored rows.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether a fetch is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Collection[T]) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Collection[T]) replace(items []T) {
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

func (c *Collection[T]) append(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

func (c *Collection[T]) patch(item T) {
	id := c.id(item)
	c.mu.Lock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = item
			break
		}
	}
	c.mu.Unlock()
}

func (c *Collection[T]) remove(id string) {
	c.mu.Lock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

// fetchInto retrieves the full remote collection and replaces the local list
// wholesale. On failure the previous list is left untouched.
func fetchInto[T any](ctx context.Context, c *Collection[T], load func(context.Context) ([]T, error)) {
	c.setLoading(true)
	defer c.setLoading(false)

	items, err := load(ctx)
	if err != nil {
		slog.Error("Failed to fetch "+c.name, "err", err)
		return
	}
	if ctx.Err() != nil {
		// The owning scope was torn down while the call was in flight;
		// the result must not be applied.
		return
	}
	c.replace(items)
}

// createInto sends the insert and appends the server-echoed row. Returns nil
// on failure, leaving the local list exactly as it was.
func createInto[T any](ctx context.Context, c *Collection[T], insert func(context.Context) (*T, error)) *T {
	created, err := insert(ctx)
	if err != nil {
		slog.Error("Failed to create "+c.name, "err", err)
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	c.append(*created)
	return created
}

// updateInto sends the patch and replaces the matching local entry with the
// server-echoed row. Returns nil on failure.
func updateInto[T any](ctx context.Context, c *Collection[T], apply func(context.Context) (*T, error)) *T {
	updated, err := apply(ctx)
	if err != nil {
		slog.Error("Failed to update "+c.name, "err", err)
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	c.patch(*updated)
	return updated
}

// deleteFrom removes remotely first and locally only after remote
// confirmation, so a row whose remote delete failed never disappears from
// the mirror.
func deleteFrom[T any](ctx context.Context, c *Collection[T], id string, del func(context.Context) error) {
	if err := del(ctx); err != nil {
		slog.Error("Failed to delete "+c.name, "err", err, "id", id)
		return
	}
	if ctx.Err() != nil {
		return
	}
	c.remove(id)
}

// Store owns one collection per admin entity. A single instance is created
// at startup and shared across the back office.
type Store struct {
	Categories *Collection[entity.Category]
	Suppliers  *Collection[entity.Supplier]
	Products   *Collection[entity.Product]
	Orders     *Collection[entity.Order]

	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
}

func NewStore(
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
) *Store {
	return &Store{
		Categories: newCollection("categories", func(c entity.Category) string { return c.ID }),
		Suppliers:  newCollection("suppliers", func(s entity.Supplier) string { return s.ID }),
		Products:   newCollection("products", func(p entity.Product) string { return p.ID }),
		Orders:     newCollection("orders", func(o entity.Order) string { return o.ID }),

		categoryRepo: categories,
		supplierRepo: suppliers,
		productRepo:  products,
		orderRepo:    orders,
	}
}

// --- Categories ---

func (s *Store) FetchCategories(ctx context.Context) {
	fetchInto(ctx, s.Categories, s.categoryRepo.FindAll)
}

func (s *Store) CreateCategory(ctx context.Context, in entity.CategoryInput) *entity.Category {
	return createInto(ctx, s.Categories, func(ctx context.Context) (*entity.Category, error) {
		return s.categoryRepo.Insert(ctx, in)
	})
}

func (s *Store) UpdateCategory(ctx context.Context, id string, patch entity.CategoryPatch) *entity.Category {
	return updateInto(ctx, s.Categories, func(ctx context.Context) (*entity.Category, error) {
		return s.categoryRepo.Update(ctx, id, patch)
	})
}

func (s *Store) DeleteCategory(ctx context.Context, id string) {
	deleteFrom(ctx, s.Categories, id, func(ctx context.Context) error {
		return s.categoryRepo.Delete(ctx, id)
	})
}

// --- Suppliers ---

func (s *Store) FetchSuppliers(ctx context.Context) {
	fetchInto(ctx, s.Suppliers, s.supplierRepo.FindAll)
}

func (s *Store) CreateSupplier(ctx context.Context, in entity.SupplierInput) *entity.Supplier {
	return createInto(ctx, s.Suppliers, func(ctx context.Context) (*entity.Supplier, error) {
		return s.supplierRepo.Insert(ctx, in)
	})
}

func (s *Store) UpdateSupplier(ctx context.Context, id string, patch entity.SupplierPatch) *entity.Supplier {
	return updateInto(ctx, s.Suppliers, func(ctx context.Context) (*entity.Supplier, error) {
		return s.supplierRepo.Update(ctx, id, patch)
	})
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) {
	deleteFrom(ctx, s.Suppliers, id, func(ctx context.Context) error {
		return s.supplierRepo.Delete(ctx, id)
	})
}

// --- Products ---

func (s *Store) FetchProducts(ctx context.Context) {
	fetchInto(ctx, s.Products, s.productRepo.FindAll)
}

func (s *Store) CreateProduct(ctx context.Context, in entity.ProductInput) *entity.Product {
	return createInto(ctx, s.Products, func(ctx context.Context) (*entity.Product, error) {
		return s.productRepo.Insert(ctx, in)
	})
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch entity.ProductPatch) *entity.Product {
	return updateInto(ctx, s.Products, func(ctx context.Context) (*entity.Product, error) {
		return s.productRepo.Update(ctx, id, patch)
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id string) {
	deleteFrom(ctx, s.Products, id, func(ctx context.Context) error {
		return s.productRepo.Delete(ctx, id)
	})
}

// --- Orders ---
//
// Orders are created by the storefront checkout, never from the back office;
// here they are only listed and moved through their status lifecycle.

func (s *Store) FetchOrders(ctx context.Context) {
	fetchInto(ctx, s.Orders, s.orderRepo.FindAll)
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) *entity.Order {
	return updateInto(ctx, s.Orders, func(ctx context.Context) (*entity.Order, error) {
		return s.orderRepo.UpdateStatus(ctx, id, status)
	})
}
