package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/repository"
)

const productCols = "id, name, slug, description, price, cost, stock, min_stock, sku, images, category_id, supplier_id, created_at, updated_at"

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Cost,
		&p.Stock, &p.MinStock, &p.SKU, pq.Array(&p.Images),
		&p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productCols+" FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Search applies the storefront filters, counts the full match set and
// returns one page ordered newest first.
func (r *productRepository) Search(ctx context.Context, q repository.ProductQuery) ([]entity.Product, int, error) {
	var where []string
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if q.CategoryID != "" {
		add("category_id = $%d", q.CategoryID)
	}
	if q.NameQuery != "" {
		add("name ILIKE $%d", "%"+q.NameQuery+"%")
	}
	if q.MinPrice != nil {
		add("price >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("price <= $%d", *q.MaxPrice)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * repository.ProductsPerPage
	args = append(args, repository.ProductsPerPage, offset)

	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productCols, whereSQL, len(args)-1, len(args),
	)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productCols+" FROM products WHERE slug = $1", slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %q: %w", slug, err)
	}
	return p, nil
}

func (r *productRepository) Insert(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, slug, description, price, cost, stock, min_stock, sku, images, category_id, supplier_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING "+productCols,
		in.Name, in.Slug, in.Description, in.Price, in.Cost, in.Stock, in.MinStock, in.SKU, pq.Array(images), in.CategoryID, in.SupplierID,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Slug != nil {
		b.set("slug", *patch.Slug)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Price != nil {
		b.set("price", *patch.Price)
	}
	if patch.Cost != nil {
		b.set("cost", *patch.Cost)
	}
	if patch.Stock != nil {
		b.set("stock", *patch.Stock)
	}
	if patch.MinStock != nil {
		b.set("min_stock", *patch.MinStock)
	}
	if patch.SKU != nil {
		b.set("sku", *patch.SKU)
	}
	if patch.Images != nil {
		b.set("images", pq.Array(*patch.Images))
	}
	if patch.CategoryID != nil {
		b.set("category_id", *patch.CategoryID)
	}
	if patch.SupplierID != nil {
		b.set("supplier_id", *patch.SupplierID)
	}
	if b.empty() {
		return r.findByID(ctx, id)
	}

	set, args := b.clause(id)
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s", set, len(args), productCols),
		args...,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) findByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productCols+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func collectProducts(rows *sql.Rows) ([]entity.Product, error) {
	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
